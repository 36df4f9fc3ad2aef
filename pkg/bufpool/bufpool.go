// Package bufpool provides a pool of reusable byte buffers for payload
// serialization. Buffers are reset before being returned to the pool, and
// oversized buffers are dropped instead of retained so that one large
// payload does not pin memory for the rest of the process lifetime.
package bufpool

import (
	"bytes"
	"sync"
)

// maxRetainedCap is the largest buffer capacity the pool keeps around.
// Telemetry records are small; anything bigger came from an unusual
// payload and is cheaper to reallocate than to hold.
const maxRetainedCap = 16 << 10

var pool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Get retrieves an empty buffer from the pool, allocating one if the pool
// is empty.
func Get() *bytes.Buffer {
	return pool.Get().(*bytes.Buffer)
}

// Put resets the buffer and returns it to the pool. Buffers that grew
// beyond maxRetainedCap are discarded.
func Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxRetainedCap {
		return
	}
	b.Reset()
	pool.Put(b)
}
