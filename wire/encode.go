package wire

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"deedles.dev/wlpaperd/internal/bin"
	"golang.org/x/sys/unix"
)

// MessageBuilder is a message that is under construction.
type MessageBuilder struct {
	// Method is the name of the method being called. It is included
	// purely for debugging purposes.
	Method string

	// Args is the original set of arguments passed to the function from
	// which this MessageBuilder was generated. It is included purely
	// for debugging purposes.
	Args []any

	sender Object
	op     uint16
	data   []byte
	fds    []int
	err    error
}

// NewMessage starts a message from sender with the given opcode.
func NewMessage(sender Object, op uint16) *MessageBuilder {
	return &MessageBuilder{
		sender: sender,
		op:     op,
	}
}

func (mb *MessageBuilder) Sender() Object {
	return mb.sender
}

func (mb *MessageBuilder) Op() uint16 {
	return mb.op
}

func (mb *MessageBuilder) WriteInt(v int32) {
	if mb.err != nil {
		return
	}

	mb.data = bin.Append(mb.data, v)
}

func (mb *MessageBuilder) WriteUint(v uint32) {
	if mb.err != nil {
		return
	}

	mb.data = bin.Append(mb.data, v)
}

// WriteObject writes the ID of v, or 0 if v is nil.
func (mb *MessageBuilder) WriteObject(v Object) {
	var id uint32
	if !isNil(v) {
		id = v.ID()
	}
	mb.WriteUint(id)
}

func (mb *MessageBuilder) WriteNewID(v NewID) {
	if mb.err != nil {
		return
	}

	mb.WriteString(v.Interface)
	mb.WriteUint(v.Version)
	mb.WriteUint(v.ID)
}

func (mb *MessageBuilder) WriteFixed(v Fixed) {
	if mb.err != nil {
		return
	}

	mb.data = bin.Append(mb.data, v)
}

func (mb *MessageBuilder) WriteString(v string) {
	if mb.err != nil {
		return
	}

	length := uint32(len(v) + 1)
	mb.data = bin.Append(mb.data, length)
	mb.data = append(mb.data, v...)
	mb.data = append(mb.data, make([]byte, 1+padding(length))...)
}

func (mb *MessageBuilder) WriteArray(v []byte) {
	if mb.err != nil {
		return
	}

	length := uint32(len(v))
	mb.data = bin.Append(mb.data, length)
	mb.data = append(mb.data, v...)
	mb.data = append(mb.data, make([]byte, padding(length))...)
}

// WriteFile duplicates the file descriptor of v so that it is sent
// along with the message. v itself may be closed as soon as this
// returns.
func (mb *MessageBuilder) WriteFile(v *os.File) {
	if mb.err != nil {
		return
	}

	fd, err := unix.Dup(int(v.Fd()))
	if err != nil {
		mb.err = fmt.Errorf("dup fd: %w", err)
		return
	}

	mb.fds = append(mb.fds, fd)
}

// Bytes returns the encoded message, including its header.
func (mb *MessageBuilder) Bytes() ([]byte, error) {
	if mb.err != nil {
		return nil, mb.err
	}

	length := uint32(headerSize + len(mb.data))
	if length > 0xFFFF {
		return nil, fmt.Errorf("message too large: %v bytes", length)
	}

	msg := make([]byte, 0, length)
	msg = bin.Append(msg, mb.sender.ID())
	msg = bin.Append(msg, (length<<16)|uint32(mb.op))
	msg = append(msg, mb.data...)
	return msg, nil
}

// Build builds the message and sends it to c. The MessageBuilder
// should not be used again after this method is called.
func (mb *MessageBuilder) Build(c *Conn) error {
	defer mb.close()

	msg, err := mb.Bytes()
	if err != nil {
		return err
	}

	var oob []byte
	if len(mb.fds) > 0 {
		oob = unix.UnixRights(mb.fds...)
	}

	err = c.write(msg, oob)
	if err != nil {
		return fmt.Errorf("send %v: %w", mb, err)
	}
	return nil
}

func (mb *MessageBuilder) close() {
	errs := make([]error, 0, len(mb.fds))
	for _, fd := range mb.fds {
		errs = append(errs, unix.Close(fd))
	}
	if mb.err == nil {
		mb.err = errors.Join(errs...)
	}
	mb.fds = nil
}

func (mb *MessageBuilder) String() string {
	args := make([]string, 0, len(mb.Args))
	for _, arg := range mb.Args {
		args = append(args, formatArg(arg))
	}

	return fmt.Sprintf("%v.%v(%v)", mb.sender, mb.Method, strings.Join(args, ", "))
}
