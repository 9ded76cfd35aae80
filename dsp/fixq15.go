// File: dsp/fixq15.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package dsp

// Q15 is the fixed-point scale factor for FixQ15: 15 fractional bits.
const Q15 = 1 << 15

// FixQ15 is a fixed-point number with 15 fractional bits, stored as a
// scaled int64 to leave headroom above int32 during multiply-accumulate.
type FixQ15 int64

// Add returns lhs + rhs.
func (lhs FixQ15) Add(rhs FixQ15) FixQ15 { return lhs + rhs }

// Sub returns lhs - rhs.
func (lhs FixQ15) Sub(rhs FixQ15) FixQ15 { return lhs - rhs }

// Mul returns lhs * rhs, rescaled back down by Q15.
func (lhs FixQ15) Mul(rhs FixQ15) FixQ15 { return FixQ15(int64(lhs) * int64(rhs) / Q15) }

// Div returns lhs / rhs, rescaled up by Q15 before dividing.
func (lhs FixQ15) Div(rhs FixQ15) FixQ15 { return FixQ15(int64(lhs) * Q15 / int64(rhs)) }

// Value returns the raw scaled integer.
func (v FixQ15) Value() int64 { return int64(v) }
