// File: sdr/simulator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Simulator stands in for a physical RTL-SDR device: it generates a
// synthetic FM-modulated tone at the configured sample rate and paces
// ReadRaw to roughly the real device's data rate, so the pipeline
// downstream sees the same soft real-time backpressure it would against
// actual hardware.

package sdr

import (
	"context"
	"math"
	"sync"
	"time"
)

// Simulator is a deterministic, dependency-free Source for tests and for
// running the reference pipeline without attached hardware.
type Simulator struct {
	mu       sync.Mutex
	cfg      Config
	sample   int64
	toneHz   float64
	lastRead time.Time
	closed   bool
}

// NewSimulator constructs a Simulator that synthesizes a tone at toneHz
// offset from the (virtual) center frequency.
func NewSimulator(toneHz float64) *Simulator {
	return &Simulator{toneHz: toneHz}
}

// Open records the configuration. It performs no settle delay and discards
// no samples: its WarmupIterations loop only checks ctx for cancellation.
func (s *Simulator) Open(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.lastRead = time.Now()

	for i := 0; i < cfg.WarmupIterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

// ReadRaw synthesizes len(buf)/2 interleaved unsigned-byte IQ samples
// centered at 127 (matching the RTL-SDR's unsigned 8-bit wire format) and
// sleeps long enough that successive calls arrive at roughly
// SampleRateHz, so a caller relying on ReadRaw for pacing behaves the same
// against the simulator as against real hardware.
func (s *Simulator) ReadRaw(buf []byte) (int, error) {
	if s.closed {
		return 0, ErrDeviceClosed
	}

	n := len(buf) / 2
	s.mu.Lock()
	sampleRateHz := s.cfg.SampleRateHz
	s.mu.Unlock()
	rate := float64(sampleRateHz)
	if rate == 0 {
		rate = float64(audioSampleRate * oversampling1 * oversampling2)
	}

	omega := 2 * math.Pi * s.toneHz / rate
	for i := 0; i < n; i++ {
		phase := omega * float64(s.sample)
		buf[2*i+0] = byte(127 + int(40*math.Cos(phase)))
		buf[2*i+1] = byte(127 + int(40*math.Sin(phase)))
		s.sample++
	}

	elapsed := time.Since(s.lastRead)
	wantDuration := time.Duration(float64(n) / rate * float64(time.Second))
	if wantDuration > elapsed {
		sleepFor(wantDuration - elapsed)
	}
	s.lastRead = time.Now()

	return 2 * n, nil
}

// Reconfigure swaps in a new center frequency / gain mode / sample rate
// without stopping the read loop. The simulator has no tuner PLL to
// resettle, so this takes effect on the very next ReadRaw.
func (s *Simulator) Reconfigure(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// Close marks the simulator closed; subsequent ReadRaw calls fail.
func (s *Simulator) Close() error {
	s.closed = true
	return nil
}

var _ Source = (*Simulator)(nil)
