// File: dsp/filter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Boxcar decimation filters: sum every `decimation` consecutive samples
// and emit one output sample per group (the sum for IQ, the sum divided by
// `decimation` for PCM). This is the same
// integrate-then-decimate filter the reference FM receiver runs twice
// (once on the IQ stream, once on the demodulated PCM stream) to step down
// from the RTL-SDR's raw sample rate to 48kHz audio.

package dsp

// DecimateIQ sums every decimation consecutive IQ samples in place and
// returns the shortened slice (aliased to the input's backing array, as in
// the original's std::vector::resize-in-place approach).
func DecimateIQ(samples []IQ, decimation int) []IQ {
	if decimation <= 1 {
		return samples
	}

	i := 0
	var sum IQ

	for idx, s := range samples {
		sum = sum.Add(s)
		if (idx+1)%decimation == 0 {
			samples[i] = sum
			i++
			sum = IQ{}
		}
	}

	return samples[:len(samples)/decimation]
}

// DecimatePCM sums every decimation consecutive PCM samples in place,
// averaging each group back down to a single sample, and returns the
// shortened slice. The running sum is carried in a FixQ15 accumulator for
// the int64 headroom it exists to provide, rather than a bare int64.
func DecimatePCM(samples []int16, decimation int) []int16 {
	if decimation <= 1 {
		return samples
	}

	i := 0
	var sum FixQ15

	for idx, s := range samples {
		sum = sum.Add(FixQ15(s))
		if (idx+1)%decimation == 0 {
			samples[i] = int16(sum.Value() / int64(decimation))
			i++
			sum = 0
		}
	}

	return samples[:len(samples)/decimation]
}
