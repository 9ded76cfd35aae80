// File: sdr/source.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package sdr abstracts the tuner front-end the reference pipeline reads
// raw IQ samples from. Source is implemented by Simulator here; a real
// RTL-SDR backend would satisfy the same interface behind a build tag.
package sdr

import "context"

// Config mirrors the tuning parameters the reference receiver's main()
// pushes down to the device before starting the pipeline.
type Config struct {
	// CenterFrequencyHz is the user-requested center frequency; the
	// actual tuner frequency is offset by a quarter of the sample rate
	// so the desired channel lands away from the DC spike (see
	// dsp.PolarRotate90).
	CenterFrequencyHz uint32
	// SampleRateHz is the raw IQ sample rate requested from the device.
	SampleRateHz uint32
	// GainAuto selects automatic gain control when true.
	GainAuto bool
	// WarmupIterations discards this many initial reads before any data
	// reaches the pipeline, letting the tuner's AGC and filters settle.
	WarmupIterations int
	// DeviceIndex selects which attached device to open when more than
	// one is present.
	DeviceIndex int
}

// CenterFrequencyOffset returns the tuner frequency to request for a
// desired channel frequency, offset by a quarter of the configured sample
// rate so the channel lands away from the DC spike instead of on it (see
// dsp.PolarRotate90). This restores the original receiver's
// `frequency += RTL_SDR_SAMPLE_RATE / 4` trick as a device-independent
// method on Config rather than arithmetic inlined at each call site.
func (c Config) CenterFrequencyOffset(channelHz uint32) uint32 {
	return channelHz + c.SampleRateHz/4
}

// DefaultConfig returns the reference receiver's tuning defaults.
func DefaultConfig() Config {
	return Config{
		SampleRateHz:     audioSampleRate * oversampling1 * oversampling2,
		GainAuto:         true,
		WarmupIterations: 1,
		DeviceIndex:      0,
	}
}

const (
	audioSampleRate = 48000
	oversampling1   = 4
	oversampling2   = 6
)

// IFSampleRate is the intermediate-frequency sample rate after the first
// decimation stage.
func IFSampleRate() uint32 { return audioSampleRate * oversampling1 }

// Source is a tunable raw-sample producer. ReadRaw fills buf with one
// batch of interleaved unsigned-byte IQ samples (the wire format RTL-SDR
// devices use) and returns the number of bytes actually placed.
type Source interface {
	// Open prepares the device with the given configuration.
	Open(ctx context.Context, cfg Config) error
	// ReadRaw blocks until buf is filled or an error occurs.
	ReadRaw(buf []byte) (int, error)
	// Reconfigure applies a new center frequency / gain mode without
	// stopping the device, the live-retune path a hot-reload triggers.
	Reconfigure(cfg Config) error
	// Close releases the device.
	Close() error
}

// deviceFactory constructs a fresh Source for one entry of the registry.
type deviceFactory func() Source

// devices is the registry -d selects from, named after the reference
// receiver's verbose_device_search: index 0 is always the built-in
// simulator, matching the original's default when no RTL-SDR hardware is
// attached. A real driver would register itself here behind a build tag.
var devices = []deviceFactory{
	func() Source { return NewSimulator(1200) },
}

// OpenDevice constructs and opens the Source registered at index, the
// counterpart to the original's -d <selector> command-line option.
func OpenDevice(ctx context.Context, index int, cfg Config) (Source, error) {
	if index < 0 || index >= len(devices) {
		return nil, ErrDeviceNotFound
	}
	cfg.DeviceIndex = index
	src := devices[index]()
	if err := src.Open(ctx, cfg); err != nil {
		return nil, err
	}
	return src, nil
}
