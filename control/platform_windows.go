//go:build windows
// +build windows

// control/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific metrics/debug introspection points.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets Windows-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}

// RaiseSchedulingPriority is a no-op on Windows: priority classes are set
// per-process via a different API than the POSIX nice value this package
// exposes on Linux, and the reference pipeline doesn't need it there.
func RaiseSchedulingPriority(delta int) error {
	return nil
}
