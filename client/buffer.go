package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

type Buffer struct {
	Listener BufferListener

	proxy
}

func (buf *Buffer) String() string {
	return fmt.Sprintf("%v@%v", BufferInterface, buf.id)
}

func (buf *Buffer) Destroy() {
	msg := wire.NewMessage(buf, 0)
	msg.Method = "destroy"
	buf.client.Enqueue(msg)
	buf.Listener = nil
}
