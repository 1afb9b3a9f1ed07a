package layershell_test

import (
	"context"
	"testing"
	"time"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/internal/wltest"
	"deedles.dev/wlpaperd/layershell"
	"deedles.dev/wlpaperd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listener struct {
	configures [][3]uint32
	closed     bool
}

func (lis *listener) Configure(serial, width, height uint32) {
	lis.configures = append(lis.configures, [3]uint32{serial, width, height})
}

func (lis *listener) Closed() {
	lis.closed = true
}

type request struct {
	sender uint32
	op     uint16
}

func TestLayerSurface(t *testing.T) {
	conn, peer := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	registry := client.Display().GetRegistry()
	compositor := wl.BindCompositor(client, registry, 1, 4)
	surface := compositor.CreateSurface()
	shell := layershell.BindShell(client, registry, 2, 5)
	assert.Equal(t, uint32(layershell.ShellVersion), shell.Version())

	ls := shell.GetLayerSurface(surface, nil, layershell.LayerBackground, "test")
	ls.SetSize(0, 0)
	ls.SetAnchor(layershell.AnchorAll)
	ls.SetExclusiveZone(-1)
	surface.Commit()

	var lis listener
	ls.Listener = &lis

	errc := make(chan error, 1)
	go func() {
		errc <- func() error {
			expected := []request{
				{1, 1},
				{registry.ID(), 0},
				{compositor.ID(), 0},
				{registry.ID(), 0},
			}
			for _, req := range expected {
				_, err := peer.Expect(req.sender, req.op)
				if err != nil {
					return err
				}
			}

			msg, err := peer.Expect(shell.ID(), 0)
			if err != nil {
				return err
			}
			if msg.ReadUint() != ls.ID() || msg.ReadUint() != surface.ID() || msg.ReadUint() != 0 {
				return assert.AnError
			}
			if layershell.Layer(msg.ReadUint()) != layershell.LayerBackground || msg.ReadString() != "test" {
				return assert.AnError
			}

			for _, op := range []uint16{0, 1, 2} {
				_, err := peer.Expect(ls.ID(), op)
				if err != nil {
					return err
				}
			}
			_, err = peer.Expect(surface.ID(), 6)
			if err != nil {
				return err
			}

			msg, err = peer.Expect(1, 0)
			if err != nil {
				return err
			}
			callback := msg.ReadUint()

			err = peer.Send(ls.ID(), 0, func(mb *wire.MessageBuilder) {
				mb.WriteUint(9)
				mb.WriteUint(1920)
				mb.WriteUint(1080)
			})
			if err != nil {
				return err
			}
			err = peer.Send(ls.ID(), 1, nil)
			if err != nil {
				return err
			}
			return peer.Send(callback, 0, func(mb *wire.MessageBuilder) { mb.WriteUint(1) })
		}()
	}()

	require.NoError(t, client.RoundTrip())
	require.NoError(t, <-errc)

	assert.Equal(t, [][3]uint32{{9, 1920, 1080}}, lis.configures)
	assert.True(t, lis.closed)
}

func TestLayerSurfaceAck(t *testing.T) {
	conn, peer := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	registry := client.Display().GetRegistry()
	compositor := wl.BindCompositor(client, registry, 1, 4)
	shell := layershell.BindShell(client, registry, 2, 1)
	ls := shell.GetLayerSurface(compositor.CreateSurface(), nil, layershell.LayerBackground, "")
	ls.AckConfigure(42)
	ls.Destroy()
	shell.Destroy()

	errc := make(chan error, 1)
	go func() {
		for {
			msg, err := peer.Read()
			if err != nil {
				errc <- err
				return
			}
			if msg.Sender() == ls.ID() && msg.Op() == 6 {
				if serial := msg.ReadUint(); serial != 42 {
					errc <- assert.AnError
					return
				}
				_, err := peer.Expect(ls.ID(), 7)
				errc <- err
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Wait(ctx))
	require.NoError(t, <-errc)
	assert.Nil(t, ls.Listener)
}
