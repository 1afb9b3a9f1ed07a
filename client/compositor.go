package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

type Compositor struct {
	proxy
}

func BindCompositor(client *Client, registry *Registry, name, version uint32) *Compositor {
	compositor := Compositor{proxy: proxy{client: client, version: min(version, CompositorVersion)}}
	client.Add(&compositor)
	registry.Bind(name, CompositorInterface, compositor.version, &compositor)

	return &compositor
}

func (c *Compositor) String() string {
	return fmt.Sprintf("%v@%v", CompositorInterface, c.id)
}

func (c *Compositor) CreateSurface() *Surface {
	s := Surface{proxy: proxy{client: c.client, version: c.version}}
	c.client.Add(&s)

	msg := wire.NewMessage(c, 0)
	msg.Method = "create_surface"
	msg.Args = []any{s.id}
	msg.WriteUint(s.id)
	c.client.Enqueue(msg)

	return &s
}
