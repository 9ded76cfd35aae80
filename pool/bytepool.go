// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool


// BytePool is compatible with NUMA-pool if enabled.
type BytePool struct {
	npool *NUMAPool // If set, use NUMA-aware pool, fallback to sync.Pool.
	size  int
}

func NewBytePool(size int, node int, useNUMA bool) *BytePool {
	return &BytePool{
		npool: NewNUMAPool(node, size, useNUMA),
		size:  size,
	}
}

// GetBuffer returns a buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	if b.npool != nil {
		return b.npool.Get()
	}
	// no pool: make regular slice
	return make([]byte, b.size)
}

// PutBuffer returns a buffer to the pool.
func (b *BytePool) PutBuffer(buf []byte) {
	if b.npool != nil {
		b.npool.Put(buf)
		return
	}
	// no pool: GC handles memory
}

// Acquire and Release satisfy api.BytePool, exposing this pool by the
// library-wide buffer-pool contract in addition to its own GetBuffer/
// PutBuffer names.
func (b *BytePool) Acquire(n int) []byte {
	buf := b.GetBuffer()
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	return buf[:n]
}

func (b *BytePool) Release(buf []byte) {
	b.PutBuffer(buf)
}
