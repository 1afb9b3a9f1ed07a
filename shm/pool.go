package shm

import (
	"errors"
	"fmt"
	"os"
	"slices"

	wl "deedles.dev/wlpaperd/client"
	"golang.org/x/sys/unix"
)

// Pool is a growable region of shared memory from which buffers are
// handed out. A buffer's memory is not reused until the compositor
// has released it.
type Pool struct {
	shm   *wl.Shm
	file  *os.File
	mmap  Mmap
	pool  *wl.ShmPool
	slots []*slot
}

// slot is a region of the pool backing a single wl_buffer.
type slot struct {
	buf    *wl.Buffer
	offset int
	size   int
	width  int32
	height int32
	stride int32
	format wl.ShmFormat
	busy   bool
}

// Release implements wl.BufferListener.
func (s *slot) Release() {
	s.busy = false
}

func (s *slot) matches(width, height, stride int32, format wl.ShmFormat) bool {
	return (s.width == width) && (s.height == height) && (s.stride == stride) && (s.format == format)
}

// NewPool returns an empty pool. Nothing is sent to the compositor
// until the pool is first resized.
func NewPool(shm *wl.Shm) (*Pool, error) {
	file, err := Create()
	if err != nil {
		return nil, fmt.Errorf("create SHM file: %w", err)
	}

	return &Pool{
		shm:  shm,
		file: file,
	}, nil
}

// Len returns the current size of the pool in bytes.
func (p *Pool) Len() int {
	return len(p.mmap)
}

// Format returns the pixel format that buffers should preferably use.
// ABGR8888 matches the byte order of image.RGBA, so it is used if the
// compositor supports it.
func (p *Pool) Format() wl.ShmFormat {
	if p.shm.Supports(wl.ShmFormatAbgr8888) {
		return wl.ShmFormatAbgr8888
	}
	return wl.ShmFormatArgb8888
}

// Resize makes sure that the pool is at least size bytes long. Pools
// can only grow, so smaller sizes are ignored.
func (p *Pool) Resize(size int) error {
	if size <= len(p.mmap) {
		return nil
	}
	if size > 1<<31-1 {
		return fmt.Errorf("pool size %v is too large", size)
	}

	err := p.file.Truncate(int64(size))
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	err = p.mmap.Unmap()
	if err != nil {
		return fmt.Errorf("unmap: %w", err)
	}
	p.mmap = nil

	mmap, err := Map(p.file, size, unix.PROT_READ|unix.PROT_WRITE)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}
	p.mmap = mmap

	if p.pool == nil {
		p.pool = p.shm.CreatePool(p.file, int32(size))
		return nil
	}
	p.pool.Resize(int32(size))
	return nil
}

// Buffer returns a buffer of the given geometry along with the memory
// backing it. The buffer is considered in use until the compositor
// releases it, which happens after it has been attached, committed
// and then replaced. The memory is only valid until the next call to
// Buffer or Resize.
func (p *Pool) Buffer(width, height, stride int32, format wl.ShmFormat) ([]byte, *wl.Buffer, error) {
	if (width <= 0) || (height <= 0) || (stride < width) {
		return nil, nil, fmt.Errorf("invalid buffer geometry: %vx%v, stride %v", width, height, stride)
	}
	size := int(stride) * int(height)

	for _, s := range p.slots {
		if !s.busy && s.matches(width, height, stride, format) {
			s.busy = true
			return p.mmap[s.offset : s.offset+size], s.buf, nil
		}
	}

	p.slots = slices.DeleteFunc(p.slots, func(s *slot) bool {
		if s.busy {
			return false
		}
		s.buf.Destroy()
		return true
	})

	offset := place(p.slots, size)
	err := p.Resize(offset + size)
	if err != nil {
		return nil, nil, err
	}

	s := slot{
		offset: offset,
		size:   size,
		width:  width,
		height: height,
		stride: stride,
		format: format,
		busy:   true,
	}
	s.buf = p.pool.CreateBuffer(int32(offset), width, height, stride, format)
	s.buf.Listener = &s
	p.slots = append(p.slots, &s)

	return p.mmap[offset : offset+size], s.buf, nil
}

// place finds the lowest offset at which size bytes fit between the
// given slots.
func place(slots []*slot, size int) int {
	sorted := slices.Clone(slots)
	slices.SortFunc(sorted, func(s1, s2 *slot) int { return s1.offset - s2.offset })

	var offset int
	for _, s := range sorted {
		if s.offset-offset >= size {
			return offset
		}
		offset = max(offset, s.offset+s.size)
	}
	return offset
}

// Destroy destroys every buffer and the pool itself and releases the
// memory.
func (p *Pool) Destroy() error {
	for _, s := range p.slots {
		s.buf.Destroy()
	}
	p.slots = nil

	if p.pool != nil {
		p.pool.Destroy()
		p.pool = nil
	}

	err := errors.Join(p.mmap.Unmap(), p.file.Close())
	p.mmap = nil
	return err
}
