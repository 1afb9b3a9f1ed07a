package wire

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// maxFDs is the most file descriptors libwayland will send in a single
// sendmsg call.
const maxFDs = 28

func xdgRuntimeDir() string {
	dir, ok := os.LookupEnv("XDG_RUNTIME_DIR")
	if ok {
		return dir
	}
	return fmt.Sprintf("/var/run/user/%v", os.Getuid())
}

// SocketPath determines the path to the Wayland Unix domain socket
// based on the contents of the $WAYLAND_DISPLAY environment variable.
// It does not attempt to determine if the value corresponds to an
// actual socket.
func SocketPath() string {
	v, ok := os.LookupEnv("WAYLAND_DISPLAY")
	if !ok {
		v = "wayland-0"
	}
	if filepath.IsAbs(v) {
		return v
	}

	return filepath.Join(xdgRuntimeDir(), v)
}

// Conn represents a low-level Wayland connection. It is not generally
// used directly, instead being handled automatically by a Client.
type Conn struct {
	conn *net.UnixConn
	fds  []int
}

// NewConn creates a new Conn that wraps c. After this is called, use
// the provided Close method to close c instead of calling its own
// Close method.
func NewConn(c *net.UnixConn) *Conn {
	return &Conn{
		conn: c,
	}
}

// Dial opens a connection to the Wayland socket based on the current
// environment. It follows the procedure outlined at
// https://wayland-book.com/protocol-design/wire-protocol.html#transports
func Dial() (*Conn, error) {
	if v, ok := os.LookupEnv("WAYLAND_SOCKET"); ok {
		fd, err := strconv.ParseInt(v, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("parse WAYLAND_SOCKET fd: %w", err)
		}
		file := os.NewFile(uintptr(fd), "WAYLAND_SOCKET")
		defer file.Close()

		c, err := net.FileConn(file)
		if err != nil {
			return nil, fmt.Errorf("open WAYLAND_SOCKET connection: %w", err)
		}
		uc, ok := c.(*net.UnixConn)
		if !ok {
			c.Close()
			return nil, fmt.Errorf("WAYLAND_SOCKET is not a unix socket: %T", c)
		}
		return NewConn(uc), nil
	}

	s, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: SocketPath(), Net: "unix"})
	if err != nil {
		return nil, err
	}
	return NewConn(s), nil
}

// Close closes the underlying connection along with any received file
// descriptors that were never claimed by a message.
func (c *Conn) Close() error {
	for _, fd := range c.fds {
		unix.Close(fd)
	}
	c.fds = nil
	return c.conn.Close()
}

// Read reads regular data into buf, collecting any file descriptors
// that arrive alongside it.
func (c *Conn) Read(buf []byte) (int, error) {
	oob := make([]byte, unix.CmsgSpace(maxFDs*4))
	n, oobn, _, _, err := c.conn.ReadMsgUnix(buf, oob)
	if oobn > 0 {
		ferr := c.readFDs(oob[:oobn])
		if ferr != nil {
			return n, errors.Join(err, ferr)
		}
	}
	return n, err
}

func (c *Conn) readFDs(data []byte) error {
	cmsgs, err := unix.ParseSocketControlMessage(data)
	if err != nil {
		return fmt.Errorf("parse socket control messages: %w", err)
	}
	for _, cmsg := range cmsgs {
		fds, err := unix.ParseUnixRights(&cmsg)
		if err != nil {
			if errors.Is(err, unix.EINVAL) {
				continue
			}
			return fmt.Errorf("parse unix control message: %w", err)
		}
		c.fds = append(c.fds, fds...)
	}
	return nil
}

func (c *Conn) popFD() (int, bool) {
	if len(c.fds) == 0 {
		return -1, false
	}

	fd := c.fds[0]
	c.fds = c.fds[1:]
	return fd, true
}

func (c *Conn) write(data, oob []byte) error {
	n, oobn, err := c.conn.WriteMsgUnix(data, oob, nil)
	if err != nil {
		return err
	}
	if (n < len(data)) || (oobn < len(oob)) {
		return fmt.Errorf("short write: %v/%v bytes, %v/%v control bytes", n, len(data), oobn, len(oob))
	}
	return nil
}
