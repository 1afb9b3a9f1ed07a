package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

type Surface struct {
	Listener SurfaceListener

	proxy
}

func (s *Surface) String() string {
	return fmt.Sprintf("%v@%v", SurfaceInterface, s.id)
}

func (s *Surface) Destroy() {
	msg := wire.NewMessage(s, 0)
	msg.Method = "destroy"
	s.client.Enqueue(msg)
	s.Listener = nil
}

// Attach sets buf as the pending content of the surface. A nil buf
// unmaps the surface on the next commit.
func (s *Surface) Attach(buf *Buffer, x, y int32) {
	var id uint32
	if buf != nil {
		id = buf.id
	}

	msg := wire.NewMessage(s, 1)
	msg.Method = "attach"
	msg.Args = []any{id, x, y}
	msg.WriteUint(id)
	msg.WriteInt(x)
	msg.WriteInt(y)
	s.client.Enqueue(msg)
}

// Damage marks a region, in surface coordinates, as changed.
func (s *Surface) Damage(x, y, width, height int32) {
	msg := wire.NewMessage(s, 2)
	msg.Method = "damage"
	msg.Args = []any{x, y, width, height}
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(width)
	msg.WriteInt(height)
	s.client.Enqueue(msg)
}

func (s *Surface) Commit() {
	msg := wire.NewMessage(s, 6)
	msg.Method = "commit"
	s.client.Enqueue(msg)
}

// DamageBuffer marks a region, in buffer coordinates, as changed. It
// falls back to Damage on surfaces older than version 4, which is
// equivalent for unscaled, untransformed buffers.
func (s *Surface) DamageBuffer(x, y, width, height int32) {
	if s.version < 4 {
		s.Damage(x, y, width, height)
		return
	}

	msg := wire.NewMessage(s, 9)
	msg.Method = "damage_buffer"
	msg.Args = []any{x, y, width, height}
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(width)
	msg.WriteInt(height)
	s.client.Enqueue(msg)
}
