// Package layershell implements the client side of the
// wlr-layer-shell-unstable-v1 protocol, which lets clients place
// surfaces on layers of a specific output, such as the background.
package layershell

import (
	"fmt"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/wire"
)

const (
	ShellInterface   = "zwlr_layer_shell_v1"
	ShellVersion     = 4
	SurfaceInterface = "zwlr_layer_surface_v1"
)

type Layer uint32

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight

	AnchorAll = AnchorTop | AnchorBottom | AnchorLeft | AnchorRight
)

type KeyboardInteractivity uint32

const (
	KeyboardInteractivityNone KeyboardInteractivity = iota
	KeyboardInteractivityExclusive
	KeyboardInteractivityOnDemand
)

// Shell is a bound zwlr_layer_shell_v1 global.
type Shell struct {
	client  *wl.Client
	id      uint32
	version uint32
}

func BindShell(client *wl.Client, registry *wl.Registry, name, version uint32) *Shell {
	shell := Shell{client: client, version: min(version, ShellVersion)}
	client.Add(&shell)
	registry.Bind(name, ShellInterface, shell.version, &shell)

	return &shell
}

func (shell *Shell) ID() uint32                 { return shell.id }
func (shell *Shell) SetID(id uint32)            { shell.id = id }
func (shell *Shell) Delete()                    {}
func (shell *Shell) Version() uint32            { return shell.version }
func (shell *Shell) MethodName(op uint16) string { return "unknown" }

func (shell *Shell) String() string {
	return fmt.Sprintf("%v@%v", ShellInterface, shell.id)
}

func (shell *Shell) Dispatch(msg *wire.MessageBuffer) error {
	return wire.UnknownOpError{Interface: ShellInterface, Type: "event", Op: msg.Op()}
}

// GetLayerSurface assigns the layer surface role to surface. A nil
// output lets the compositor choose one. The surface must be committed
// once the initial state has been set, and nothing may be attached to
// it until the first configure event has been acknowledged.
func (shell *Shell) GetLayerSurface(surface *wl.Surface, output *wl.Output, layer Layer, namespace string) *Surface {
	ls := Surface{client: shell.client}
	shell.client.Add(&ls)

	var outputID uint32
	if output != nil {
		outputID = output.ID()
	}

	msg := wire.NewMessage(shell, 0)
	msg.Method = "get_layer_surface"
	msg.Args = []any{ls.id, surface.ID(), outputID, layer, namespace}
	msg.WriteUint(ls.id)
	msg.WriteUint(surface.ID())
	msg.WriteUint(outputID)
	msg.WriteUint(uint32(layer))
	msg.WriteString(namespace)
	shell.client.Enqueue(msg)

	return &ls
}

// Destroy destroys the shell object. Layer surfaces created from it
// are unaffected. It is a no-op before version 3.
func (shell *Shell) Destroy() {
	if shell.version < 3 {
		return
	}

	msg := wire.NewMessage(shell, 1)
	msg.Method = "destroy"
	shell.client.Enqueue(msg)
}
