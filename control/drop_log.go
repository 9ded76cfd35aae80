// File: control/drop_log.go
// Author: momentics <momentics@gmail.com>
//
// DropLog keeps a bounded, recent history of ring-buffer drop events for
// debug introspection (e.g. "show me the last 50 times a queue overflowed
// and why"), backed by eapache/queue's ring-buffer-based FIFO so pushes
// and trims are O(1) regardless of history size.

package control

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// DropEntry records one ring-buffer overflow.
type DropEntry struct {
	Stage   string
	At      time.Time
	Dropped uint64
}

// DropLog retains at most Capacity entries, discarding the oldest on
// overflow.
type DropLog struct {
	mu       sync.Mutex
	q        *queue.Queue
	capacity int
}

// NewDropLog constructs a DropLog that retains at most capacity entries.
func NewDropLog(capacity int) *DropLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &DropLog{q: queue.New(), capacity: capacity}
}

// Record appends one drop event, evicting the oldest entry if the log is
// at capacity.
func (d *DropLog) Record(stage string, dropped uint64, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.q.Add(DropEntry{Stage: stage, At: at, Dropped: dropped})
	for d.q.Length() > d.capacity {
		d.q.Remove()
	}
}

// Snapshot returns a copy of the currently retained entries, oldest first.
func (d *DropLog) Snapshot() []DropEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]DropEntry, d.q.Length())
	for i := range out {
		out[i] = d.q.Get(i).(DropEntry)
	}
	return out
}

// Len returns the number of entries currently retained.
func (d *DropLog) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.q.Length()
}
