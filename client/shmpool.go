package wl

import (
	"fmt"

	"deedles.dev/wlpaperd/wire"
)

type ShmPool struct {
	proxy
}

func (pool *ShmPool) String() string {
	return fmt.Sprintf("%v@%v", ShmPoolInterface, pool.id)
}

func (pool *ShmPool) CreateBuffer(offset, width, height, stride int32, format ShmFormat) *Buffer {
	buf := Buffer{proxy: proxy{client: pool.client, version: BufferVersion}}
	pool.client.Add(&buf)

	msg := wire.NewMessage(pool, 0)
	msg.Method = "create_buffer"
	msg.Args = []any{buf.id, offset, width, height, stride, format}
	msg.WriteUint(buf.id)
	msg.WriteInt(offset)
	msg.WriteInt(width)
	msg.WriteInt(height)
	msg.WriteInt(stride)
	msg.WriteUint(uint32(format))
	pool.client.Enqueue(msg)

	return &buf
}

// Destroy destroys the pool. Buffers created from it remain valid
// until they are destroyed themselves.
func (pool *ShmPool) Destroy() {
	msg := wire.NewMessage(pool, 1)
	msg.Method = "destroy"
	pool.client.Enqueue(msg)
}

// Resize grows the pool to size bytes. Pools can not shrink.
func (pool *ShmPool) Resize(size int32) {
	msg := wire.NewMessage(pool, 2)
	msg.Method = "resize"
	msg.Args = []any{size}
	msg.WriteInt(size)
	pool.client.Enqueue(msg)
}
