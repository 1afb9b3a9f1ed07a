// Package objstore tracks the protocol objects known to one side of a
// connection.
package objstore

import "deedles.dev/wlpaperd/wire"

type Store struct {
	objects map[uint32]wire.Object
	nextID  uint32
}

// New returns a store that allocates IDs starting at start. Clients
// start at 1, servers at 0xFF000000.
func New(start uint32) *Store {
	return &Store{
		objects: make(map[uint32]wire.Object),
		nextID:  start,
	}
}

// Add registers obj, assigning it the next free ID if it does not
// already have one.
func (s *Store) Add(obj wire.Object) {
	id := obj.ID()
	if id == 0 {
		id = s.nextID
		obj.SetID(id)
		s.nextID++
	}

	s.objects[id] = obj
}

func (s *Store) Get(id uint32) wire.Object {
	return s.objects[id]
}

func (s *Store) Delete(id uint32) {
	obj := s.objects[id]
	delete(s.objects, id)
	if obj != nil {
		obj.Delete()
	}
}

// Dispatch hands msg to the object that it was sent to.
func (s *Store) Dispatch(msg *wire.MessageBuffer) (wire.Object, error) {
	obj := s.objects[msg.Sender()]
	if obj == nil {
		return nil, wire.UnknownSenderIDError{Msg: msg}
	}

	return obj, obj.Dispatch(msg)
}
