package wl_test

import (
	"context"
	"testing"
	"time"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/internal/wltest"
	"deedles.dev/wlpaperd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type displayListener struct {
	client  *wl.Client
	deleted []uint32
}

func (lis *displayListener) Error(id uint32, code wl.DisplayError, msg string) {}

func (lis *displayListener) DeleteId(id uint32) {
	lis.deleted = append(lis.deleted, id)
	lis.client.Delete(id)
}

// serveSync answers the next sync request, announcing globals first.
func serveSync(peer *wltest.Peer, registry uint32, globals map[uint32]wl.Global) error {
	msg, err := peer.Expect(1, 0)
	if err != nil {
		return err
	}
	callback := msg.ReadUint()

	for name, g := range globals {
		err := peer.Send(registry, 0, func(mb *wire.MessageBuilder) {
			mb.WriteUint(name)
			mb.WriteString(g.Interface)
			mb.WriteUint(g.Version)
		})
		if err != nil {
			return err
		}
	}

	err = peer.Send(callback, 0, func(mb *wire.MessageBuilder) { mb.WriteUint(1) })
	if err != nil {
		return err
	}
	return peer.Send(1, 1, func(mb *wire.MessageBuilder) { mb.WriteUint(callback) })
}

func TestRoundTrip(t *testing.T) {
	conn, peer := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	lis := displayListener{client: client}
	client.Display().Listener = &lis

	errc := make(chan error, 1)
	go func() { errc <- serveSync(peer, 0, nil) }()

	require.NoError(t, client.RoundTrip())
	require.NoError(t, <-errc)

	// delete_id may be dispatched after the callback's done event.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for len(lis.deleted) == 0 {
		require.NoError(t, client.Wait(ctx))
	}

	assert.Equal(t, []uint32{2}, lis.deleted)
	assert.Nil(t, client.Get(2))
}

func TestRegistryBind(t *testing.T) {
	conn, peer := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	registry := client.Display().GetRegistry()
	assert.Equal(t, uint32(2), registry.ID())

	errc := make(chan error, 1)
	go func() {
		_, err := peer.Expect(1, 1)
		if err != nil {
			errc <- err
			return
		}
		errc <- serveSync(peer, 2, map[uint32]wl.Global{
			5: {Interface: wl.CompositorInterface, Version: 5},
		})
	}()

	require.NoError(t, client.RoundTrip())
	require.NoError(t, <-errc)
	assert.Equal(t, map[uint32]wl.Global{5: {Interface: wl.CompositorInterface, Version: 5}}, registry.Globals())

	compositor := wl.BindCompositor(client, registry, 5, 5)
	assert.Equal(t, uint32(5), compositor.Version())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Wait(ctx))

	msg, err := peer.Expect(2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), msg.ReadUint())
	assert.Equal(t, wire.NewID{Interface: wl.CompositorInterface, Version: 5, ID: compositor.ID()}, msg.ReadNewID())
	require.NoError(t, msg.Err())
}

func TestSurfaceRequests(t *testing.T) {
	conn, peer := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	registry := client.Display().GetRegistry()
	compositor := wl.BindCompositor(client, registry, 1, 4)
	surface := compositor.CreateSurface()
	surface.Attach(nil, 0, 0)
	surface.DamageBuffer(0, 0, 10, 20)
	surface.Commit()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Wait(ctx))

	_, err := peer.Expect(1, 1)
	require.NoError(t, err)
	_, err = peer.Expect(registry.ID(), 0)
	require.NoError(t, err)
	_, err = peer.Expect(compositor.ID(), 0)
	require.NoError(t, err)

	for _, op := range []uint16{1, 9, 6} {
		msg, err := peer.Expect(surface.ID(), op)
		require.NoError(t, err)
		if op == 9 {
			msg.ReadInt()
			msg.ReadInt()
			assert.Equal(t, int32(10), msg.ReadInt())
			assert.Equal(t, int32(20), msg.ReadInt())
		}
	}
}

func TestWaitCanceled(t *testing.T) {
	conn, _ := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, client.Wait(ctx), context.DeadlineExceeded)
}

func TestConnectionLost(t *testing.T) {
	conn, peer := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	require.NoError(t, peer.Conn.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := client.Wait(ctx)
	assert.True(t, wl.IsConnectionError(err), "unexpected error: %v", err)
}

func TestDo(t *testing.T) {
	conn, _ := wltest.NewPeer(t)
	client := wl.NewClient(conn)
	defer client.Close()

	ran := make(chan struct{})
	go client.Do(func() error {
		close(ran)
		return assert.AnError
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, client.Wait(ctx), assert.AnError)

	select {
	case <-ran:
	default:
		t.Fatal("queued function did not run")
	}
}
