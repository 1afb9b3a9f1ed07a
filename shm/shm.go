// Package shm provides helpers for dealing with shared memory.
package shm

import (
	"fmt"
	"os"

	"github.com/justincormack/go-memfd"
	"golang.org/x/sys/unix"
)

// Create creates an anonymous file suitable for sharing with the
// compositor. It never appears in the filesystem.
func Create() (*os.File, error) {
	mfd, err := memfd.Create()
	if err != nil {
		return nil, fmt.Errorf("memfd: %w", err)
	}
	return mfd.File, nil
}

type Mmap []byte

// Map maps the first size bytes of file into memory, shared with every
// other process that maps it.
func Map(file *os.File, size int, prot int) (mmap Mmap, err error) {
	sc, err := file.SyscallConn()
	if err != nil {
		return nil, err
	}

	cerr := sc.Control(func(fd uintptr) {
		m, merr := unix.Mmap(int(fd), 0, size, prot, unix.MAP_SHARED)
		mmap, err = Mmap(m), merr
	})
	if cerr != nil {
		return nil, cerr
	}

	return mmap, err
}

func (mmap Mmap) Unmap() error {
	if mmap == nil {
		return nil
	}
	return unix.Munmap(mmap)
}
