package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

// Interface names and the highest versions of them that this package
// implements.
const (
	DisplayInterface    = "wl_display"
	DisplayVersion      = 1
	RegistryInterface   = "wl_registry"
	RegistryVersion     = 1
	CallbackInterface   = "wl_callback"
	CallbackVersion     = 1
	CompositorInterface = "wl_compositor"
	CompositorVersion   = 6
	ShmInterface        = "wl_shm"
	ShmVersion          = 1
	ShmPoolInterface    = "wl_shm_pool"
	ShmPoolVersion      = 1
	BufferInterface     = "wl_buffer"
	BufferVersion       = 1
	SurfaceInterface    = "wl_surface"
	SurfaceVersion      = 6
	OutputInterface     = "wl_output"
	OutputVersion       = 4
)

type DisplayError uint32

const (
	DisplayErrorInvalidObject DisplayError = iota
	DisplayErrorInvalidMethod
	DisplayErrorNoMemory
	DisplayErrorImplementation
)

func (err DisplayError) String() string {
	switch err {
	case DisplayErrorInvalidObject:
		return "invalid object"
	case DisplayErrorInvalidMethod:
		return "invalid method"
	case DisplayErrorNoMemory:
		return "no memory"
	case DisplayErrorImplementation:
		return "implementation"
	}
	return fmt.Sprintf("DisplayError(%d)", uint32(err))
}

// ShmFormat is a pixel format code. Apart from ARGB8888 and XRGB8888,
// the values are DRM fourcc codes.
type ShmFormat uint32

const (
	ShmFormatArgb8888 ShmFormat = 0
	ShmFormatXrgb8888 ShmFormat = 1
	ShmFormatXbgr8888 ShmFormat = 0x34324258
	ShmFormatAbgr8888 ShmFormat = 0x34324241
)

func (f ShmFormat) String() string {
	switch f {
	case ShmFormatArgb8888:
		return "ARGB8888"
	case ShmFormatXrgb8888:
		return "XRGB8888"
	case ShmFormatXbgr8888:
		return "XBGR8888"
	case ShmFormatAbgr8888:
		return "ABGR8888"
	}

	b := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	return fmt.Sprintf("%q", b[:])
}

type OutputSubpixel int32

const (
	OutputSubpixelUnknown OutputSubpixel = iota
	OutputSubpixelNone
	OutputSubpixelHorizontalRgb
	OutputSubpixelHorizontalBgr
	OutputSubpixelVerticalRgb
	OutputSubpixelVerticalBgr
)

type OutputTransform int32

const (
	OutputTransformNormal OutputTransform = iota
	OutputTransform90
	OutputTransform180
	OutputTransform270
	OutputTransformFlipped
	OutputTransformFlipped90
	OutputTransformFlipped180
	OutputTransformFlipped270
)

type OutputMode uint32

const (
	OutputModeCurrent   OutputMode = 0x1
	OutputModePreferred OutputMode = 0x2
)

type DisplayListener interface {
	Error(objectID uint32, code DisplayError, message string)
	DeleteId(id uint32)
}

type RegistryListener interface {
	Global(name uint32, inter string, version uint32)
	GlobalRemove(name uint32)
}

type CallbackListener interface {
	Done(data uint32)
}

type ShmListener interface {
	Format(format ShmFormat)
}

type BufferListener interface {
	Release()
}

type SurfaceListener interface {
	Enter(output *Output)
	Leave(output *Output)
}

type OutputListener interface {
	Geometry(x, y, physicalWidth, physicalHeight int32, subpixel OutputSubpixel, make, model string, transform OutputTransform)
	Mode(flags OutputMode, width, height, refresh int32)
	Done()
	Scale(factor int32)
	Name(name string)
	Description(description string)
}

func (display *Display) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		objectID := msg.ReadUint()
		code := msg.ReadUint()
		message := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}
		if display.Listener != nil {
			display.Listener.Error(objectID, DisplayError(code), message)
		}
		return nil

	case 1:
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if display.Listener != nil {
			display.Listener.DeleteId(id)
		}
		return nil
	}

	return wire.UnknownOpError{Interface: DisplayInterface, Type: "event", Op: msg.Op()}
}

func (display *Display) MethodName(op uint16) string {
	switch op {
	case 0:
		return "error"
	case 1:
		return "delete_id"
	}
	return "unknown"
}

func (registry *Registry) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		name := msg.ReadUint()
		inter := msg.ReadString()
		version := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		registry.globals[name] = Global{Interface: inter, Version: version}
		if registry.Listener != nil {
			registry.Listener.Global(name, inter, version)
		}
		return nil

	case 1:
		name := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		delete(registry.globals, name)
		if registry.Listener != nil {
			registry.Listener.GlobalRemove(name)
		}
		return nil
	}

	return wire.UnknownOpError{Interface: RegistryInterface, Type: "event", Op: msg.Op()}
}

func (registry *Registry) MethodName(op uint16) string {
	switch op {
	case 0:
		return "global"
	case 1:
		return "global_remove"
	}
	return "unknown"
}

func (callback *Callback) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		data := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if callback.Listener != nil {
			callback.Listener.Done(data)
		}
		return nil
	}

	return wire.UnknownOpError{Interface: CallbackInterface, Type: "event", Op: msg.Op()}
}

func (callback *Callback) MethodName(op uint16) string {
	switch op {
	case 0:
		return "done"
	}
	return "unknown"
}

func (compositor *Compositor) Dispatch(msg *wire.MessageBuffer) error {
	return wire.UnknownOpError{Interface: CompositorInterface, Type: "event", Op: msg.Op()}
}

func (compositor *Compositor) MethodName(op uint16) string {
	return "unknown"
}

func (shm *Shm) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		format := ShmFormat(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		shm.formats.Add(format)
		if shm.Listener != nil {
			shm.Listener.Format(format)
		}
		return nil
	}

	return wire.UnknownOpError{Interface: ShmInterface, Type: "event", Op: msg.Op()}
}

func (shm *Shm) MethodName(op uint16) string {
	switch op {
	case 0:
		return "format"
	}
	return "unknown"
}

func (pool *ShmPool) Dispatch(msg *wire.MessageBuffer) error {
	return wire.UnknownOpError{Interface: ShmPoolInterface, Type: "event", Op: msg.Op()}
}

func (pool *ShmPool) MethodName(op uint16) string {
	return "unknown"
}

func (buf *Buffer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		if buf.Listener != nil {
			buf.Listener.Release()
		}
		return nil
	}

	return wire.UnknownOpError{Interface: BufferInterface, Type: "event", Op: msg.Op()}
}

func (buf *Buffer) MethodName(op uint16) string {
	switch op {
	case 0:
		return "release"
	}
	return "unknown"
}

func (s *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0, 1:
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if s.Listener == nil {
			return nil
		}
		output, _ := s.client.Get(id).(*Output)
		if msg.Op() == 0 {
			s.Listener.Enter(output)
			return nil
		}
		s.Listener.Leave(output)
		return nil

	case 2, 3:
		// preferred_buffer_scale and preferred_buffer_transform. Buffers
		// are always submitted at scale 1 without a transform.
		msg.ReadInt()
		return msg.Err()
	}

	return wire.UnknownOpError{Interface: SurfaceInterface, Type: "event", Op: msg.Op()}
}

func (s *Surface) MethodName(op uint16) string {
	switch op {
	case 0:
		return "enter"
	case 1:
		return "leave"
	case 2:
		return "preferred_buffer_scale"
	case 3:
		return "preferred_buffer_transform"
	}
	return "unknown"
}

func (out *Output) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		x := msg.ReadInt()
		y := msg.ReadInt()
		physicalWidth := msg.ReadInt()
		physicalHeight := msg.ReadInt()
		subpixel := msg.ReadInt()
		make := msg.ReadString()
		model := msg.ReadString()
		transform := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Listener != nil {
			out.Listener.Geometry(x, y, physicalWidth, physicalHeight, OutputSubpixel(subpixel), make, model, OutputTransform(transform))
		}
		return nil

	case 1:
		flags := msg.ReadUint()
		width := msg.ReadInt()
		height := msg.ReadInt()
		refresh := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Listener != nil {
			out.Listener.Mode(OutputMode(flags), width, height, refresh)
		}
		return nil

	case 2:
		if out.Listener != nil {
			out.Listener.Done()
		}
		return nil

	case 3:
		factor := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Listener != nil {
			out.Listener.Scale(factor)
		}
		return nil

	case 4, 5:
		str := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Listener == nil {
			return nil
		}
		if msg.Op() == 4 {
			out.Listener.Name(str)
			return nil
		}
		out.Listener.Description(str)
		return nil
	}

	return wire.UnknownOpError{Interface: OutputInterface, Type: "event", Op: msg.Op()}
}

func (out *Output) MethodName(op uint16) string {
	switch op {
	case 0:
		return "geometry"
	case 1:
		return "mode"
	case 2:
		return "done"
	case 3:
		return "scale"
	case 4:
		return "name"
	case 5:
		return "description"
	}
	return "unknown"
}
