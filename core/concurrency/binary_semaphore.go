// File: core/concurrency/binary_semaphore.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BinarySemaphore is a coalescing, single-slot wake primitive: any number of
// Post calls between two Wait calls collapse into a single wakeup. It gates
// a Pipeline's per-stage goroutines at start and parks SPSCRing producers
// and consumers that are configured to block.

package concurrency

import (
	"sync"
	"time"
)

// BinarySemaphore locks the semaphore to the "not ready" state, or unlocks
// it to "ready". It is not a counting semaphore: Post is idempotent while
// the semaphore is already ready.
type BinarySemaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	ready bool
}

// NewBinarySemaphore constructs a BinarySemaphore in the given initial state.
func NewBinarySemaphore(ready bool) *BinarySemaphore {
	bs := &BinarySemaphore{ready: ready}
	bs.cond = sync.NewCond(&bs.mu)
	return bs
}

// Value reports the current ready state without consuming it.
func (bs *BinarySemaphore) Value() bool {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.ready
}

// Post unlocks the semaphore. If a goroutine is blocked in Wait or
// WaitTimeout it is woken; at most one waiter proceeds per Post, matching
// the underlying condition variable's notify-one semantics.
func (bs *BinarySemaphore) Post() {
	bs.mu.Lock()
	bs.ready = true
	bs.mu.Unlock()

	bs.cond.Signal()
}

// Wait blocks until the semaphore is posted, then consumes the post and
// returns.
func (bs *BinarySemaphore) Wait() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	for !bs.ready {
		bs.cond.Wait()
	}
	bs.ready = false
}

// WaitTimeout blocks until the semaphore is posted or the timeout elapses.
// It returns true if the semaphore was posted, false on timeout. sync.Cond
// has no wait-with-timeout, so the deadline is enforced by a helper
// goroutine that periodically signals the condition variable; when
// WaitTimeout returns the helper is told to stop and exits on its next
// select, without WaitTimeout waiting for it.
func (bs *BinarySemaphore) WaitTimeout(d time.Duration) bool {
	deadline := time.Now().Add(d)

	stopCh := make(chan struct{})
	defer close(stopCh)
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				bs.cond.Signal()
			}
		}
	}()

	bs.mu.Lock()
	defer bs.mu.Unlock()

	for !bs.ready {
		if time.Now().After(deadline) {
			return false
		}
		bs.cond.Wait()
	}
	bs.ready = false
	return true
}
