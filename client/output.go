package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

type Output struct {
	Listener OutputListener

	proxy
}

func BindOutput(client *Client, registry *Registry, name, version uint32) *Output {
	output := Output{proxy: proxy{client: client, version: min(version, OutputVersion)}}
	client.Add(&output)
	registry.Bind(name, OutputInterface, output.version, &output)

	return &output
}

func (out *Output) String() string {
	return fmt.Sprintf("%v@%v", OutputInterface, out.id)
}

// Release tells the compositor that the output object will no longer
// be used. Versions older than 3 have no such request, and the object
// simply stays alive until the connection is closed.
func (out *Output) Release() {
	out.Listener = nil
	if out.version < 3 {
		return
	}

	msg := wire.NewMessage(out, 0)
	msg.Method = "release"
	out.client.Enqueue(msg)
}
