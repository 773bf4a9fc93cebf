// Package fix implements signed Q8.24 fixed-point arithmetic.
//
// A Q8.24 value is a 32-bit signed integer holding a real number scaled by
// 2^24: 8 integer bits, 24 fractional bits, range [-128, 128). All narrowing
// in this package truncates toward negative infinity (arithmetic right
// shift); results are reproducible bit for bit across platforms.
package fix

// FracBits is the number of fractional bits in a Q8.24 value.
const FracBits = 24

// One is the Q8.24 representation of 1.0.
const One Q824 = 1 << FracBits

// Q824 is a signed Q8.24 fixed-point number.
type Q824 int32

// FromInt converts a small integer to Q8.24. Values outside [-128, 127]
// overflow silently, like any other Q8.24 arithmetic.
func FromInt(i int) Q824 {
	return Q824(i) << FracBits
}

// FromFloat converts a float64 to Q8.24, truncating toward negative infinity
// so that FromFloat agrees with Mul on representable inputs.
func FromFloat(f float64) Q824 {
	scaled := f * float64(One)
	q := Q824(scaled)
	if float64(q) > scaled {
		q--
	}
	return q
}

// Float converts q back to a float64. Exact: every Q8.24 value is
// representable in a float64.
func (q Q824) Float() float64 {
	return float64(q) / float64(One)
}

// Mul multiplies two Q8.24 values. The operands are widened to int64,
// multiplied, and arithmetic-shifted right by 24 bits. For negative products
// the shift truncates toward negative infinity; this bias is deliberate and
// part of the output contract, do not replace it with rounding.
func Mul(a, b Q824) Q824 {
	return Q824((int64(a) * int64(b)) >> FracBits)
}

// MulInt scales a Q8.24 value by a plain integer. No shift is needed: the
// product of an integer and a Q8.24 value is already in Q8.24.
func MulInt(q Q824, i int) Q824 {
	return Q824(int64(q) * int64(i))
}
