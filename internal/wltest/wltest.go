// Package wltest provides an in-process stand-in for the compositor
// end of a Wayland connection.
package wltest

import (
	"fmt"
	"net"
	"os"
	"testing"

	"deedles.dev/wlpaperd/wire"
	"golang.org/x/sys/unix"
)

// Pair returns both ends of a connected socket pair. Both are closed
// when the test finishes.
func Pair(t testing.TB) (client, server *wire.Conn) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}

	client = wire.NewConn(fileConn(t, fds[0], "client"))
	server = wire.NewConn(fileConn(t, fds[1], "server"))
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func fileConn(t testing.TB, fd int, name string) *net.UnixConn {
	file := os.NewFile(uintptr(fd), name)
	defer file.Close()

	c, err := net.FileConn(file)
	if err != nil {
		t.Fatalf("file conn: %v", err)
	}
	return c.(*net.UnixConn)
}

// Peer plays the compositor's role on the server end of a Pair.
type Peer struct {
	Conn *wire.Conn
}

// NewPeer returns the client end of a new Pair along with a Peer for
// the server end.
func NewPeer(t testing.TB) (*wire.Conn, *Peer) {
	client, server := Pair(t)
	return client, &Peer{Conn: server}
}

// Read reads the next request sent by the client.
func (p *Peer) Read() (*wire.MessageBuffer, error) {
	return wire.ReadMessage(p.Conn)
}

// Expect reads the next request and checks that it was sent to the
// given object with the given opcode.
func (p *Peer) Expect(sender uint32, op uint16) (*wire.MessageBuffer, error) {
	msg, err := p.Read()
	if err != nil {
		return nil, err
	}
	if (msg.Sender() != sender) || (msg.Op() != op) {
		return msg, fmt.Errorf("expected request %v on object %v, got %v on %v", op, sender, msg.Op(), msg.Sender())
	}
	return msg, nil
}

// Send sends an event from the object with the given ID. args fills in
// the message's arguments.
func (p *Peer) Send(sender uint32, op uint16, args func(*wire.MessageBuilder)) error {
	msg := wire.NewMessage(object(sender), op)
	if args != nil {
		args(msg)
	}
	return msg.Build(p.Conn)
}

type object uint32

func (obj object) ID() uint32                            { return uint32(obj) }
func (obj object) SetID(uint32)                          {}
func (obj object) Delete()                               {}
func (obj object) Dispatch(msg *wire.MessageBuffer) error { return nil }
func (obj object) MethodName(op uint16) string           { return fmt.Sprint(op) }
func (obj object) String() string                        { return fmt.Sprintf("object@%v", uint32(obj)) }
