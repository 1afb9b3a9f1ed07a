package layershell

import (
	"fmt"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/wire"
)

type SurfaceListener interface {
	// Configure asks the client to resize the surface. Width or height
	// is 0 if the client may pick that dimension itself. The serial
	// must be passed to AckConfigure before the next commit that
	// responds to it.
	Configure(serial, width, height uint32)

	// Closed indicates that the surface is no longer shown, such as
	// when its output has been removed. It will not be configured
	// again and should be destroyed.
	Closed()
}

// Surface is a zwlr_layer_surface_v1.
type Surface struct {
	Listener SurfaceListener

	client *wl.Client
	id     uint32
}

func (s *Surface) ID() uint32      { return s.id }
func (s *Surface) SetID(id uint32) { s.id = id }
func (s *Surface) Delete()         {}

func (s *Surface) String() string {
	return fmt.Sprintf("%v@%v", SurfaceInterface, s.id)
}

func (s *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		serial := msg.ReadUint()
		width := msg.ReadUint()
		height := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if s.Listener != nil {
			s.Listener.Configure(serial, width, height)
		}
		return nil

	case 1:
		if s.Listener != nil {
			s.Listener.Closed()
		}
		return nil
	}

	return wire.UnknownOpError{Interface: SurfaceInterface, Type: "event", Op: msg.Op()}
}

func (s *Surface) MethodName(op uint16) string {
	switch op {
	case 0:
		return "configure"
	case 1:
		return "closed"
	}
	return "unknown"
}

// SetSize sets the requested size. A 0 dimension means that the
// surface should be stretched along it, which requires anchoring to
// both opposite edges.
func (s *Surface) SetSize(width, height uint32) {
	msg := wire.NewMessage(s, 0)
	msg.Method = "set_size"
	msg.Args = []any{width, height}
	msg.WriteUint(width)
	msg.WriteUint(height)
	s.client.Enqueue(msg)
}

func (s *Surface) SetAnchor(anchor Anchor) {
	msg := wire.NewMessage(s, 1)
	msg.Method = "set_anchor"
	msg.Args = []any{anchor}
	msg.WriteUint(uint32(anchor))
	s.client.Enqueue(msg)
}

// SetExclusiveZone reserves space for the surface. -1 asks for the
// surface to ignore other surfaces' exclusive zones and cover the
// whole output.
func (s *Surface) SetExclusiveZone(zone int32) {
	msg := wire.NewMessage(s, 2)
	msg.Method = "set_exclusive_zone"
	msg.Args = []any{zone}
	msg.WriteInt(zone)
	s.client.Enqueue(msg)
}

func (s *Surface) SetMargin(top, right, bottom, left int32) {
	msg := wire.NewMessage(s, 3)
	msg.Method = "set_margin"
	msg.Args = []any{top, right, bottom, left}
	msg.WriteInt(top)
	msg.WriteInt(right)
	msg.WriteInt(bottom)
	msg.WriteInt(left)
	s.client.Enqueue(msg)
}

func (s *Surface) SetKeyboardInteractivity(ki KeyboardInteractivity) {
	msg := wire.NewMessage(s, 4)
	msg.Method = "set_keyboard_interactivity"
	msg.Args = []any{ki}
	msg.WriteUint(uint32(ki))
	s.client.Enqueue(msg)
}

func (s *Surface) AckConfigure(serial uint32) {
	msg := wire.NewMessage(s, 6)
	msg.Method = "ack_configure"
	msg.Args = []any{serial}
	msg.WriteUint(serial)
	s.client.Enqueue(msg)
}

func (s *Surface) Destroy() {
	msg := wire.NewMessage(s, 7)
	msg.Method = "destroy"
	s.client.Enqueue(msg)
	s.Listener = nil
}
