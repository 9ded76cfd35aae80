// File: adapters/affinity_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter implementing the api.Affinity interface, delegating to the
//   platform-neutral affinity package for pipeline stage CPU pinning.
//
// Package adapters provides glue code between the core API contracts
// and the package implementations.

package adapters

import (
	"github.com/momentics/stagepipe/affinity"
	"github.com/momentics/stagepipe/api"
)

// AffinityAdapter implements api.Affinity by pinning the calling OS thread
// (via runtime.LockOSThread in the caller) to a logical CPU. NUMA-node
// tracking is informational only: the affinity package pins by CPU id and
// has no topology query, so Get/ImmutableDescriptor report whatever NUMA id
// the caller last supplied to Pin.
type AffinityAdapter struct {
	currentCPU  int
	currentNUMA int
	pinned      bool
	scope       api.AffinityScope
}

// NewAffinityAdapter creates a new AffinityAdapter with default thread scope.
// Default CPU and NUMA IDs are set to -1 (no binding).
func NewAffinityAdapter() api.Affinity {
	return &AffinityAdapter{
		currentCPU:  -1,
		currentNUMA: -1,
		pinned:      false,
		scope:       api.ScopeThread,
	}
}

// Pin assigns the calling OS thread to a specific CPU. numaID is recorded
// as supplied; no NUMA topology check is performed.
func (a *AffinityAdapter) Pin(cpuID int, numaID int) error {
	if cpuID < 0 {
		return nil
	}
	if err := affinity.SetAffinity(cpuID); err != nil {
		return err
	}
	a.currentCPU = cpuID
	a.currentNUMA = numaID
	a.pinned = true
	return nil
}

// Unpin clears the adapter's recorded binding. The affinity package exposes
// no unpin primitive, so the OS-level pin (if any) remains in effect until
// the goroutine's OS thread exits; only bookkeeping is reset here.
func (a *AffinityAdapter) Unpin() error {
	a.pinned = false
	a.currentCPU = -1
	a.currentNUMA = -1
	return nil
}

// Get returns the currently effective CPU and NUMA IDs for this adapter.
func (a *AffinityAdapter) Get() (cpuID int, numaID int, err error) {
	return a.currentCPU, a.currentNUMA, nil
}

// Scope returns the binding scope (thread or process).
func (a *AffinityAdapter) Scope() api.AffinityScope {
	return a.scope
}

// ImmutableDescriptor returns a snapshot of the current binding state,
// useful for metrics, logging, or diagnostics.
func (a *AffinityAdapter) ImmutableDescriptor() api.AffinityDescriptor {
	return api.AffinityDescriptor{
		CPUID:  a.currentCPU,
		NUMAID: a.currentNUMA,
		Scope:  a.scope,
		Pinned: a.pinned,
	}
}
