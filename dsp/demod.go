// File: dsp/demod.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FM demodulation via the polar discriminator: for each pair of adjacent
// IQ samples, the phase difference is approximately proportional to
// instantaneous frequency, so atan2 of a*conj(b) recovers the audio
// sample directly without a true phase unwrap.

package dsp

import "math"

// PolarDiscriminator computes one PCM sample from the phase difference
// between two adjacent IQ samples, scaled to the Q15 range and truncated
// to int16 the way the reference receiver casts its pcm_t output.
func PolarDiscriminator(a, b IQ) int16 {
	c := a.Mul(b.Conj())
	angle := math.Atan2(float64(c.Q), float64(c.I))
	return int16((angle / math.Pi) * Q15)
}

// Demodulator runs PolarDiscriminator across a stream of IQ samples,
// carrying the last sample of one call over as the reference for the
// first sample of the next — mirroring the reference implementation's
// function-local `static iq_t previous`.
type Demodulator struct {
	previous IQ
}

// Demod writes len(iq) PCM samples into pcm (which must be at least as
// long as iq) and advances the carried-over previous sample.
func (d *Demodulator) Demod(pcm []int16, iq []IQ) {
	if len(iq) == 0 {
		return
	}

	pcm[0] = PolarDiscriminator(iq[0], d.previous)
	for n := 1; n < len(iq); n++ {
		pcm[n] = PolarDiscriminator(iq[n], iq[n-1])
	}

	d.previous = iq[len(iq)-1]
}

// PolarRotate90 rotates raw unsigned-byte IQ samples by 90 degrees in
// place: the RTL-SDR's own mixer places the desired channel at a quarter
// of the sample rate, so rotating the stream by 90 degrees per sample pair
// recentres it at baseband. Multiplying by [1, j, -1, -j] on 8 consecutive
// raw bytes (4 IQ pairs) reduces to the swap/negate pattern below.
func PolarRotate90(data []byte) {
	for n := 0; n+8 <= len(data); n += 8 {
		tmp := ^data[n+3]
		data[n+3] = data[n+2]
		data[n+2] = tmp

		data[n+4] = ^data[n+4]
		data[n+5] = ^data[n+5]

		tmp = ^data[n+6]
		data[n+6] = data[n+7]
		data[n+7] = tmp
	}
}
