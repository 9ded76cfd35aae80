//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific platform metrics or debug probe integrations.

package control

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets Linux-specific debug metrics.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}

// RaiseSchedulingPriority lowers this process's nice value by delta
// (more negative niceness runs sooner against contending processes),
// trading fairness for the low, consistent latency a soft real-time
// pipeline wants. It requires CAP_SYS_NICE for negative deltas and is
// best-effort: failures are returned but are not fatal to the pipeline.
func RaiseSchedulingPriority(delta int) error {
	current, err := unix.Getpriority(unix.PRIO_PROCESS, 0)
	if err != nil {
		return err
	}
	// The raw getpriority syscall returns 20-niceness (range 1..40);
	// Setpriority takes niceness directly.
	return unix.Setpriority(unix.PRIO_PROCESS, 0, 20-current-delta)
}
