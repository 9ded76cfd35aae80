//go:build windows

// File: sdr/pacing_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sdr

import "time"

// sleepFor falls back to time.Sleep on Windows: unix.Nanosleep has no
// analogue there.
func sleepFor(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}
