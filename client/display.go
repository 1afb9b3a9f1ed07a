package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

type Display struct {
	Listener DisplayListener

	proxy
	registry *Registry
}

func (display *Display) String() string {
	return fmt.Sprintf("%v@%v", DisplayInterface, display.id)
}

// Sync asks the compositor to emit the done event of the returned
// callback once every previous request has been processed.
func (display *Display) Sync() *Callback {
	callback := Callback{proxy: proxy{client: display.client, version: CallbackVersion}}
	display.client.Add(&callback)

	msg := wire.NewMessage(display, 0)
	msg.Method = "sync"
	msg.Args = []any{callback.id}
	msg.WriteUint(callback.id)
	display.client.Enqueue(msg)

	return &callback
}

// GetRegistry returns the registry, creating it on the first call.
func (display *Display) GetRegistry() *Registry {
	if display.registry != nil {
		return display.registry
	}

	registry := Registry{
		proxy:   proxy{client: display.client, version: RegistryVersion},
		globals: make(map[uint32]Global),
	}
	display.client.Add(&registry)

	msg := wire.NewMessage(display, 1)
	msg.Method = "get_registry"
	msg.Args = []any{registry.id}
	msg.WriteUint(registry.id)
	display.client.Enqueue(msg)

	display.registry = &registry
	return &registry
}
