// Package wire defines types helpful for dealing with the Wayland
// wire protocol. It is primarly intended for usage by protocol
// bindings.
package wire

import (
	"fmt"
	"unsafe"
)

// Object represents a Wayland protocol object.
type Object interface {
	// ID returns the object's ID, or 0 if it has not been assigned
	// one yet.
	ID() uint32
	SetID(id uint32)

	// Delete is called when the object's ID has been released by the
	// other side of the connection.
	Delete()

	// Dispatch performs the operation requested by the message in the
	// buffer.
	Dispatch(msg *MessageBuffer) error

	// MethodName returns the name of the event or request with the
	// given opcode. It is used for debugging output.
	MethodName(op uint16) string
}

// NewID is an untyped new_id argument. It is used by requests, such as
// wl_registry.bind, that can create objects of any interface.
type NewID struct {
	Interface string
	Version   uint32
	ID        uint32
}

func (id NewID) String() string {
	return fmt.Sprintf("new id %v@%v (v%v)", id.Interface, id.ID, id.Version)
}

func padding(length uint32) uint32 {
	return (4 - (length % 4)) % 4
}

func isNil(v any) bool {
	return (v == nil) || ((*[2]uintptr)(unsafe.Pointer(&v))[1] == 0)
}
