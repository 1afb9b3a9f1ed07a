package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
	"golang.org/x/exp/maps"
)

type Registry struct {
	Listener RegistryListener

	proxy
	globals map[uint32]Global
}

// Global describes a global object advertised by the compositor.
type Global struct {
	Interface string
	Version   uint32
}

func (registry *Registry) String() string {
	return fmt.Sprintf("%v@%v", RegistryInterface, registry.id)
}

// Globals returns a snapshot of the currently advertised globals,
// keyed by name.
func (registry *Registry) Globals() map[uint32]Global {
	return maps.Clone(registry.globals)
}

// Bind binds the global with the given name to obj, which must already
// have been added to the client.
func (registry *Registry) Bind(name uint32, inter string, version uint32, obj wire.Object) {
	id := wire.NewID{Interface: inter, Version: version, ID: obj.ID()}

	msg := wire.NewMessage(registry, 0)
	msg.Method = "bind"
	msg.Args = []any{name, id}
	msg.WriteUint(name)
	msg.WriteNewID(id)
	registry.client.Enqueue(msg)
}
