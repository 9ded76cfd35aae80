//go:build !windows

// File: sdr/pacing_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sdr

import (
	"time"

	"golang.org/x/sys/unix"
)

// sleepFor paces the simulator's sample clock with unix.Nanosleep instead of
// time.Sleep, keeping it on the same syscall-level idiom the rest of the
// pack's Linux-specific files (control.RaiseSchedulingPriority, affinity)
// use rather than switching to a pure-stdlib timer for this one call site.
func sleepFor(d time.Duration) {
	if d <= 0 {
		return
	}
	ts := unix.NsecToTimespec(d.Nanoseconds())
	for {
		rem := &unix.Timespec{}
		if err := unix.Nanosleep(&ts, rem); err != unix.EINTR {
			return
		}
		ts = *rem
	}
}
