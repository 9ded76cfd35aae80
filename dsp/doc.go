// Package dsp
// Author: momentics <momentics@gmail.com>
//
// Fixed-point signal processing primitives for the FM demodulator reference
// pipeline: a Q15 fixed-point scalar, an IQ complex sample, boxcar
// decimation filters, and the polar-discriminator FM demodulator.
package dsp
