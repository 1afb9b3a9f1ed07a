package wl

import (
	"fmt"
	"os"

	"deedles.dev/wlpaperd/internal/set"
	"deedles.dev/wlpaperd/wire"
)

type Shm struct {
	Listener ShmListener

	proxy
	formats set.Set[ShmFormat]
}

func BindShm(client *Client, registry *Registry, name, version uint32) *Shm {
	shm := Shm{
		proxy: proxy{client: client, version: min(version, ShmVersion)},
		// Support for these two is mandatory, even though compositors
		// announce them anyway.
		formats: set.New(ShmFormatArgb8888, ShmFormatXrgb8888),
	}
	client.Add(&shm)
	registry.Bind(name, ShmInterface, shm.version, &shm)

	return &shm
}

func (shm *Shm) String() string {
	return fmt.Sprintf("%v@%v", ShmInterface, shm.id)
}

// Supports reports whether the compositor has announced support for
// format.
func (shm *Shm) Supports(format ShmFormat) bool {
	return shm.formats.Has(format)
}

// CreatePool creates a pool backed by file. The file may be closed
// once the request has been flushed.
func (shm *Shm) CreatePool(file *os.File, size int32) *ShmPool {
	pool := ShmPool{proxy: proxy{client: shm.client, version: ShmPoolVersion}}
	shm.client.Add(&pool)

	msg := wire.NewMessage(shm, 0)
	msg.Method = "create_pool"
	msg.Args = []any{pool.id, file, size}
	msg.WriteUint(pool.id)
	msg.WriteFile(file)
	msg.WriteInt(size)
	shm.client.Enqueue(msg)

	return &pool
}
