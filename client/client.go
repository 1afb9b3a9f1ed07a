// Package wl implements the client side of the core Wayland protocol.
//
// A Client reads messages from the compositor on a background
// goroutine, but nothing is dispatched until Flush, Wait or RoundTrip
// is called. Outgoing requests are queued the same way, so every
// listener runs on, and every request is written from, the goroutine
// that drives the Client.
package wl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"deedles.dev/wlpaperd/internal/cq"
	"deedles.dev/wlpaperd/internal/debug"
	"deedles.dev/wlpaperd/internal/objstore"
	"deedles.dev/wlpaperd/wire"
)

type Client struct {
	done  chan struct{}
	close sync.Once
	conn  *wire.Conn
	store *objstore.Store
	queue *cq.Queue[func() error]
}

// Dial connects to the compositor indicated by the environment.
func Dial() (*Client, error) {
	c, err := wire.Dial()
	if err != nil {
		return nil, err
	}

	return NewClient(c), nil
}

// NewClient returns a Client that communicates over conn. The Client
// takes ownership of conn.
func NewClient(conn *wire.Conn) *Client {
	client := Client{
		done:  make(chan struct{}),
		conn:  conn,
		store: objstore.New(1),
		queue: cq.New[func() error](),
	}
	client.Add(&Display{proxy: proxy{client: &client}})
	go client.listen()

	return &client
}

func (client *Client) listen() {
	for {
		msg, err := wire.ReadMessage(client.conn)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			// The stream can't be resynchronized after a failed read, so
			// report the error and stop.
			client.queue.Push(func() error { return fmt.Errorf("read message: %w", err) })
			return
		}

		if !client.queue.Push(func() error { return client.dispatch(msg) }) {
			return
		}
	}
}

func (client *Client) dispatch(msg *wire.MessageBuffer) error {
	obj, err := client.store.Dispatch(msg)
	if obj != nil {
		debug.Printf("%v", msg.Debug(obj))
	}
	if err != nil {
		return fmt.Errorf("dispatch %v: %w", msg.Sender(), err)
	}
	return nil
}

// Display returns the wl_display singleton.
func (client *Client) Display() *Display {
	return client.Get(1).(*Display)
}

// Close closes the connection. Queued requests that have not been
// flushed are discarded.
func (client *Client) Close() error {
	client.close.Do(func() { close(client.done) })
	client.queue.Stop()
	return client.conn.Close()
}

func (client *Client) Add(obj wire.Object) {
	client.store.Add(obj)
}

func (client *Client) Get(id uint32) wire.Object {
	return client.store.Get(id)
}

// Delete forgets about the object with the given ID. It should be
// called in response to wl_display.delete_id.
func (client *Client) Delete(id uint32) {
	client.store.Delete(id)
}

// Enqueue queues msg to be sent the next time that the queue is
// flushed.
func (client *Client) Enqueue(msg *wire.MessageBuilder) {
	client.queue.Push(func() error {
		debug.Printf(" -> %v", msg)
		return msg.Build(client.conn)
	})
}

// Do queues f to be run, in order with events and requests, on the
// goroutine that next flushes the queue. It is safe to call from any
// goroutine.
func (client *Client) Do(f func() error) {
	client.queue.Push(f)
}

// Flush flushes the event queue, sending all enqueued messages and
// processing all messages that have been received since the last time
// the queue was flushed. It returns all errors encountered. It does
// not block if there is nothing to do.
func (client *Client) Flush() error {
	select {
	case queue := <-client.queue.Get():
		return errors.Join(flushQueue(queue)...)
	default:
		return nil
	}
}

// Wait is like Flush, but blocks until there is something in the
// queue or ctx is canceled.
func (client *Client) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-client.done:
		return net.ErrClosed
	case queue := <-client.queue.Get():
		return errors.Join(flushQueue(queue)...)
	}
}

// RoundTrip flushes the queue repeatedly until the compositor has
// processed every request sent before the call.
func (client *Client) RoundTrip() error {
	get := client.queue.Get()
	done := make(chan struct{})
	client.Display().Sync().Then(func(uint32) {
		close(done)
		get = nil
	})

	var errs []error

	for {
		select {
		case <-done:
			return errors.Join(errs...)

		case <-client.done:
			return net.ErrClosed

		case queue := <-get:
			qerrs := flushQueue(queue)
			errs = append(errs, qerrs...)
			if isFatal(qerrs) {
				return errors.Join(errs...)
			}
		}
	}
}

func flushQueue(queue []func() error) (errs []error) {
	for _, ev := range queue {
		err := ev()
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// IsConnectionError reports whether err indicates that the connection
// to the compositor is gone.
func IsConnectionError(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}

func isFatal(errs []error) bool {
	for _, err := range errs {
		if IsConnectionError(err) {
			return true
		}
	}
	return false
}

// proxy holds the state shared by every client-side object.
type proxy struct {
	client  *Client
	id      uint32
	version uint32
}

func (p *proxy) ID() uint32 {
	return p.id
}

func (p *proxy) SetID(id uint32) {
	p.id = id
}

func (p *proxy) Delete() {}

// Client returns the client that the object belongs to.
func (p *proxy) Client() *Client {
	return p.client
}

// Version returns the version of the interface that the object was
// bound or created with.
func (p *proxy) Version() uint32 {
	return p.version
}
