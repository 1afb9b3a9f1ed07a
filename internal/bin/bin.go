// Package bin contains utilities for dealing with binary
// representations in host byte order, which is what the Wayland wire
// protocol uses.
package bin

import (
	"io"
	"unsafe"
)

// Word is any type that is laid out as a single 32-bit word on the
// wire.
type Word interface {
	~int32 | ~uint32
}

func Bytes[T Word](v T) [4]byte {
	return *(*[4]byte)(unsafe.Pointer(&v))
}

func Value[T Word](data [4]byte) T {
	return *(*T)(unsafe.Pointer(&data))
}

func Read[T Word](r io.Reader) (T, error) {
	var data [4]byte
	_, err := io.ReadFull(r, data[:])
	if err != nil {
		return 0, err
	}

	return Value[T](data), nil
}

// Append appends the host representation of v to buf.
func Append[T Word](buf []byte, v T) []byte {
	data := Bytes(v)
	return append(buf, data[:]...)
}
