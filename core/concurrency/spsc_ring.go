// File: core/concurrency/spsc_ring.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SPSCRing is a single-producer/single-consumer ring buffer whose
// non-blocking path is entirely lock-free: producer and consumer touch
// disjoint counters and only synchronize through a pair of BinarySemaphores
// when a face is configured to block. Counters are padded to a cache line
// to keep the producer's writes to produced from invalidating the
// consumer's cache line holding consumed, and vice versa.

package concurrency

import "sync/atomic"

// Flags selects the blocking policy of each face of an SPSCRing.
type Flags uint8

const (
	FlagNonblockingWrite Flags = 1 << 0
	FlagNonblockingRead  Flags = 1 << 1
)

// Named flag presets mirroring every combination of the two face policies.
const (
	FlagsBlockingReadBlockingWrite       Flags = 0
	FlagsBlockingReadNonblockingWrite    Flags = FlagNonblockingWrite
	FlagsNonblockingReadBlockingWrite    Flags = FlagNonblockingRead
	FlagsNonblockingReadNonblockingWrite Flags = FlagNonblockingRead | FlagNonblockingWrite
)

// Role distinguishes which face of the ring an operation applies to.
type Role int

const (
	RoleNone Role = iota
	RoleProducer
	RoleConsumer
)

// Status is the stable result code returned by every ring operation,
// independent of the element type T.
type Status int

const (
	OK                 Status = 0
	InternalError      Status = -1
	WouldBlock         Status = -2
	OperationCancelled Status = -3
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case InternalError:
		return "INTERNAL_ERROR"
	case WouldBlock:
		return "WOULD_BLOCK"
	case OperationCancelled:
		return "OPERATION_CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// ringCounters holds the three monotonic counters a ring tracks, each
// padded out to its own cache line. produced and consumed are written by
// different goroutines (producer and consumer respectively) under normal
// operation; dropped is written only by the producer on overflow.
type ringCounters struct {
	produced atomic.Uint64
	_        [56]byte
	consumed atomic.Uint64
	_        [56]byte
	dropped  atomic.Uint64
	_        [56]byte
}

func (c *ringCounters) reset() {
	c.produced.Store(0)
	c.consumed.Store(0)
	c.dropped.Store(0)
}

// SPSCRing is a bounded circular buffer for exactly one producer and one
// consumer. It backs the inter-stage queues of a Pipeline.
type SPSCRing[T any] struct {
	capacity uint64
	flags    Flags
	counters ringCounters
	buffer   []T

	writingSem *BinarySemaphore // posted by the consumer when space frees up
	readingSem *BinarySemaphore // posted by the producer when data arrives

	writingCancelled atomic.Bool
	readingCancelled atomic.Bool
}

// NewSPSCRing allocates a ring of the given capacity (clamped to at least 1)
// and blocking policy.
func NewSPSCRing[T any](capacity uint64, flags Flags) *SPSCRing[T] {
	if capacity == 0 {
		capacity = 1
	}
	r := &SPSCRing[T]{
		capacity: capacity,
		flags:    flags,
		buffer:   make([]T, capacity),
	}
	r.writingSem = NewBinarySemaphore(true)
	r.readingSem = NewBinarySemaphore(false)
	return r
}

// Capacity returns the fixed element capacity of the ring.
func (r *SPSCRing[T]) Capacity() uint64 { return r.capacity }

// RingFlags returns the face blocking policy the ring was constructed with.
func (r *SPSCRing[T]) RingFlags() Flags { return r.flags }

// GetCounters returns a consistent snapshot of produced/consumed/dropped.
// Status is InternalError if the counters are found in an impossible state
// (consumed ahead of produced, or more in-flight elements than capacity).
func (r *SPSCRing[T]) GetCounters() (produced, consumed, dropped uint64, status Status) {
	produced = r.counters.produced.Load()
	consumed = r.counters.consumed.Load()

	if produced < consumed {
		return produced, consumed, 0, InternalError
	}
	if produced-consumed > r.capacity {
		return produced, consumed, 0, InternalError
	}

	dropped = r.counters.dropped.Load()
	return produced, consumed, dropped, OK
}

// Reset rewinds the counters for the given role. RoleProducer collapses
// produced back to consumed and clears dropped; RoleConsumer advances
// consumed up to produced; RoleNone zeroes everything.
func (r *SPSCRing[T]) Reset(role Role) {
	switch role {
	case RoleProducer:
		consumed := r.counters.consumed.Load()
		r.counters.produced.Store(consumed)
		r.counters.dropped.Store(0)
	case RoleConsumer:
		produced := r.counters.produced.Load()
		r.counters.consumed.Store(produced)
	default:
		r.counters.reset()
	}
}

// Cancel unblocks a goroutine parked in a blocking Read/Write call for the
// given role. It is a no-op for a face configured as non-blocking, since
// such a face never parks.
func (r *SPSCRing[T]) Cancel(role Role) {
	switch role {
	case RoleProducer:
		if r.flags&FlagNonblockingWrite == 0 {
			r.writingCancelled.Store(true)
			r.writingSem.Post()
		}
	case RoleConsumer:
		if r.flags&FlagNonblockingRead == 0 {
			r.readingCancelled.Store(true)
			r.readingSem.Post()
		}
	}
}

// WriteOne writes a single element.
func (r *SPSCRing[T]) WriteOne(v T) (int, Status) {
	return r.WriteN([]T{v})
}

// WriteN copies as many leading elements of data as there is room for. On a
// blocking face it first waits until at least one slot is free, then writes
// at most that many; it does not wait for room for all of data. It returns
// the number of elements actually written.
func (r *SPSCRing[T]) WriteN(data []T) (int, Status) {
	count := len(data)
	if count == 0 {
		return 0, OK
	}

	produced, consumed, freeElements, st := r.awaitWriteSpace()
	if st != OK {
		return 0, st
	}

	if uint64(count) > freeElements {
		count = int(freeElements)
	}

	writeIdx := produced % r.capacity
	split := uint64(0)
	if writeIdx+uint64(count) > r.capacity {
		split = r.capacity - writeIdx
	}

	if split > 0 {
		copy(r.buffer[writeIdx:], data[:split])
		copy(r.buffer[:uint64(count)-split], data[split:count])
	} else {
		copy(r.buffer[writeIdx:writeIdx+uint64(count)], data[:count])
	}

	r.counters.produced.Store(produced + uint64(count))

	if r.flags&FlagNonblockingRead == 0 {
		r.readingSem.Post()
	}

	_ = consumed
	return count, OK
}

// WriteVia fills up to count slots directly from fn, one element at a time,
// stopping early (with InternalError) if fn returns false. It is the
// callback-driven counterpart to WriteN for producers that generate data
// in place rather than staging it in a slice first.
func (r *SPSCRing[T]) WriteVia(fn func(*T) bool, count int) (int, Status) {
	if count == 0 {
		return 0, OK
	}

	produced, _, freeElements, st := r.awaitWriteSpace()
	if st != OK {
		return 0, st
	}

	if uint64(count) > freeElements {
		count = int(freeElements)
	}

	written := 0
	writeIdx := produced % r.capacity
	for ; written < count; written++ {
		if !fn(&r.buffer[writeIdx]) {
			break
		}
		writeIdx = (writeIdx + 1) % r.capacity
	}

	if written < count {
		return written, InternalError
	}

	r.counters.produced.Store(produced + uint64(written))

	if r.flags&FlagNonblockingRead == 0 && written > 0 {
		r.readingSem.Post()
	}

	return written, OK
}

func (r *SPSCRing[T]) awaitWriteSpace() (produced, consumed, freeElements uint64, status Status) {
	if r.flags&FlagNonblockingWrite != 0 {
		p, c, _, st := r.GetCounters()
		if st != OK {
			return 0, 0, 0, st
		}
		free := r.capacity - (p - c)
		if free == 0 {
			r.counters.dropped.Add(1)
			return 0, 0, 0, WouldBlock
		}
		return p, c, free, OK
	}

	for {
		p, c, _, st := r.GetCounters()
		if st != OK {
			return 0, 0, 0, st
		}
		free := r.capacity - (p - c)
		if free > 0 {
			return p, c, free, OK
		}
		r.writingSem.Wait()
		if r.writingCancelled.Load() {
			r.writingCancelled.Store(false)
			return 0, 0, 0, OperationCancelled
		}
	}
}

// ReadOne reads a single element.
func (r *SPSCRing[T]) ReadOne() (T, Status) {
	buf := make([]T, 1)
	n, st := r.ReadN(buf)
	if n == 0 {
		var zero T
		return zero, st
	}
	return buf[0], st
}

// ReadN copies up to len(dst) available elements into dst, returning the
// number of elements actually read.
func (r *SPSCRing[T]) ReadN(dst []T) (int, Status) {
	count := len(dst)
	if count == 0 {
		return 0, OK
	}

	consumed, availableElements, st := r.awaitReadData()
	if st != OK {
		return 0, st
	}

	if uint64(count) > availableElements {
		count = int(availableElements)
	}

	readIdx := consumed % r.capacity
	split := uint64(0)
	if readIdx+uint64(count) > r.capacity {
		split = r.capacity - readIdx
	}

	if split > 0 {
		copy(dst[:split], r.buffer[readIdx:])
		copy(dst[split:count], r.buffer[:uint64(count)-split])
	} else {
		copy(dst[:count], r.buffer[readIdx:readIdx+uint64(count)])
	}

	r.counters.consumed.Store(consumed + uint64(count))

	if r.flags&FlagNonblockingWrite == 0 {
		r.writingSem.Post()
	}

	return count, OK
}

// ReadVia drains up to count available elements directly into fn, one
// element at a time, stopping early (with InternalError) if fn returns
// false.
func (r *SPSCRing[T]) ReadVia(fn func(*T) bool, count int) (int, Status) {
	if count == 0 {
		return 0, OK
	}

	consumed, availableElements, st := r.awaitReadData()
	if st != OK {
		return 0, st
	}

	if uint64(count) > availableElements {
		count = int(availableElements)
	}

	read := 0
	readIdx := consumed % r.capacity
	for ; read < count; read++ {
		if !fn(&r.buffer[readIdx]) {
			break
		}
		readIdx = (readIdx + 1) % r.capacity
	}

	if read < count {
		return read, InternalError
	}

	r.counters.consumed.Store(consumed + uint64(read))

	if r.flags&FlagNonblockingWrite == 0 && read > 0 {
		r.writingSem.Post()
	}

	return read, OK
}

func (r *SPSCRing[T]) awaitReadData() (consumed, availableElements uint64, status Status) {
	if r.flags&FlagNonblockingRead != 0 {
		p, c, _, st := r.GetCounters()
		if st != OK {
			return 0, 0, st
		}
		avail := p - c
		if avail == 0 {
			return 0, 0, WouldBlock
		}
		return c, avail, OK
	}

	for {
		p, c, _, st := r.GetCounters()
		if st != OK {
			return 0, 0, st
		}
		avail := p - c
		if avail > 0 {
			return c, avail, OK
		}
		r.readingSem.Wait()
		if r.readingCancelled.Load() {
			r.readingCancelled.Store(false)
			return 0, 0, OperationCancelled
		}
	}
}

// ProducerFace restricts an SPSCRing to the write-side operations used by a
// Pipeline stage's outbound queue handle.
type ProducerFace[T any] struct{ r *SPSCRing[T] }

// Producer returns the write-side face of the ring.
func (r *SPSCRing[T]) Producer() *ProducerFace[T] { return &ProducerFace[T]{r: r} }

func (p *ProducerFace[T]) WriteOne(v T) (int, Status)                     { return p.r.WriteOne(v) }
func (p *ProducerFace[T]) WriteN(data []T) (int, Status)                  { return p.r.WriteN(data) }
func (p *ProducerFace[T]) WriteVia(fn func(*T) bool, n int) (int, Status) { return p.r.WriteVia(fn, n) }
func (p *ProducerFace[T]) Cancel()                                        { p.r.Cancel(RoleProducer) }
func (p *ProducerFace[T]) Reset()                                         { p.r.Reset(RoleProducer) }

// ConsumerFace restricts an SPSCRing to the read-side operations used by a
// Pipeline stage's inbound queue handle.
type ConsumerFace[T any] struct{ r *SPSCRing[T] }

// Consumer returns the read-side face of the ring.
func (r *SPSCRing[T]) Consumer() *ConsumerFace[T] { return &ConsumerFace[T]{r: r} }

func (c *ConsumerFace[T]) ReadOne() (T, Status)                          { return c.r.ReadOne() }
func (c *ConsumerFace[T]) ReadN(dst []T) (int, Status)                   { return c.r.ReadN(dst) }
func (c *ConsumerFace[T]) ReadVia(fn func(*T) bool, n int) (int, Status) { return c.r.ReadVia(fn, n) }
func (c *ConsumerFace[T]) Cancel()                                       { c.r.Cancel(RoleConsumer) }
func (c *ConsumerFace[T]) Reset()                                        { c.r.Reset(RoleConsumer) }
