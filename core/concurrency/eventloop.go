// File: core/concurrency/eventloop.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EventBus is a batched, lock-free fan-out for pipeline lifecycle
// notifications (stage started/stopped, ring dropped a sample, pipeline
// error). It supports dynamic handler registration/unregistration, adaptive
// backoff while idle, and graceful stop. Publishers call Publish and
// observers register with RegisterHandler; core/pipeline.Pipeline does not
// publish to it.
//
// This version avoids using atomic.CompareAndSwap on slices (which panics),
// replacing it with mutex-protected copy-on-write for handler list updates.

package concurrency

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/stagepipe/api"
)

type Event = api.Event

// EventHandler processes pipeline lifecycle events published on an EventBus.
type EventHandler interface {
	HandleEvent(ev Event)
}

// EventBus implements a batched, lock-free poller with dynamic handler
// registration. It maintains a slice of EventHandlers protected with a mutex
// for safe concurrent updates.
type EventBus struct {
	handlers     atomic.Value  // stores []EventHandler slice (atomically swapped)
	handlersMu   sync.Mutex    // protects writes to handlers slice
	inbox        chan Event    // channel of incoming events
	batchSize    int           // max batch size per poll
	ringCapacity int           // size of event buffer
	quitCh       chan struct{} // closed on Stop()
	doneCh       chan struct{} // closed after Run() exits
	running      atomic.Bool   // running state
}

// NewEventBus creates a new EventBus with batchSize and ringCapacity parameters.
// batchSize controls the maximum number of events handled in one cycle.
// ringCapacity defines the buffered channel capacity for incoming events.
func NewEventBus(batchSize, ringCapacity int) *EventBus {
	eb := &EventBus{
		inbox:        make(chan Event, ringCapacity),
		batchSize:    batchSize,
		ringCapacity: ringCapacity,
		quitCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	eb.handlers.Store([]EventHandler{})
	return eb
}

// RegisterHandler adds a new event handler atomically and safely.
func (eb *EventBus) RegisterHandler(h EventHandler) {
	eb.handlersMu.Lock()
	defer eb.handlersMu.Unlock()
	oldHandlers := eb.handlers.Load().([]EventHandler)
	newHandlers := make([]EventHandler, len(oldHandlers)+1)
	copy(newHandlers, oldHandlers)
	newHandlers[len(oldHandlers)] = h
	eb.handlers.Store(newHandlers)
}

// UnregisterHandler removes a handler safely, if present.
func (eb *EventBus) UnregisterHandler(h EventHandler) {
	eb.handlersMu.Lock()
	defer eb.handlersMu.Unlock()
	oldHandlers := eb.handlers.Load().([]EventHandler)
	newHandlers := make([]EventHandler, 0, len(oldHandlers))
	for _, handler := range oldHandlers {
		if handler != h {
			newHandlers = append(newHandlers, handler)
		}
	}
	eb.handlers.Store(newHandlers)
}

// Run starts the bus, batching events and dispatching them to handlers.
// It runs until Stop is called.
func (eb *EventBus) Run() {
	if !eb.running.CompareAndSwap(false, true) {
		return // Already running
	}
	defer func() {
		close(eb.doneCh)
		eb.running.Store(false)
	}()

	batch := make([]Event, 0, eb.batchSize)
	backoffNs := int64(1)
	const maxBackoffNs = int64(1_000_000)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}

	for {
		batch = batch[:0]

	DrainLoop:
		for i := 0; i < eb.batchSize; i++ {
			select {
			case ev := <-eb.inbox:
				batch = append(batch, ev)
			default:
				break DrainLoop
			}
		}

		if len(batch) == 0 {
			timer.Reset(time.Duration(backoffNs) * time.Nanosecond)

			select {
			case <-eb.quitCh:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				return
			case ev := <-eb.inbox:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				batch = append(batch, ev)
				backoffNs = 1
			case <-timer.C:
				backoffNs *= 2
				if backoffNs > maxBackoffNs {
					backoffNs = maxBackoffNs
				}
			}
		} else {
			handlers := eb.handlers.Load().([]EventHandler)
			for _, ev := range batch {
				for _, handler := range handlers {
					handler.HandleEvent(ev)
				}
			}
			backoffNs = 1
		}
	}
}

// Pending returns the approximate count of buffered events waiting in inbox.
func (eb *EventBus) Pending() int {
	return len(eb.inbox)
}

// Publish adds an event to the bus's inbox for processing.
// Non-blocking, returns false if the inbox is full (the event is dropped).
func (eb *EventBus) Publish(ev Event) bool {
	select {
	case eb.inbox <- ev:
		return true
	default:
		return false
	}
}

// Stop signals Run to exit and waits for completion.
func (eb *EventBus) Stop() {
	select {
	case <-eb.quitCh:
	default:
		close(eb.quitCh)
	}

	if eb.running.Load() {
		<-eb.doneCh
	}
}
