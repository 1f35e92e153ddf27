// Package render converts integers and floating point values into digit
// sequences with their sign and base prefix, and parses digit sequences back
// into integers.
//
// Nothing here performs I/O or allocates: every result lives in a fixed
// digit buffer inside Result.
package render

import "math"

// MaxDigits is the size of the digit buffer of a Result. It holds a 64-bit
// value written in base 2 and the longest float expansion that is kept.
const MaxDigits = 128

// maxIntDigits is enough for the integer part of math.MaxFloat64.
const maxIntDigits = 310

// epsilon is the float64 machine epsilon. Float digit extraction stops once
// the remaining fraction drops below it.
const epsilon = 2.220446049250313e-16

// maxLeadingZeros bounds the leading-zero scan for tiny values; the smallest
// subnormal float64 has 323 zeros after the point.
const maxLeadingZeros = 400

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// Options is the part of a format directive the renderer looks at.
type Options struct {
	// Base is 2, 8, 10 or 16. Any other value renders in base 10.
	Base int
	// Upper selects upper case hex digits, prefix letters and
	// non-finite names.
	Upper bool
	// ForceSign prints '+' for non-negative values.
	ForceSign bool
	// SpaceSign prints ' ' for non-negative values when ForceSign is off.
	SpaceSign bool
	// Alternate adds the base prefix: 0b, 0 or 0x.
	Alternate bool
}

// NormalBase returns the base o renders in.
func (o Options) NormalBase() int {
	switch o.Base {
	case 2, 8, 10, 16:
		return o.Base
	}
	return 10
}

func (o Options) sign(neg bool) byte {
	switch {
	case neg:
		return '-'
	case o.ForceSign:
		return '+'
	case o.SpaceSign:
		return ' '
	}
	return 0
}

// Result is the output of RenderInteger or RenderFloat.
type Result struct {
	buf   [MaxDigits]byte
	start int
	n     int

	// Sign is '-', '+', ' ' or 0 for none.
	Sign byte
	// Prefix is the base prefix requested by Options.Alternate.
	Prefix string
	// Float reports whether the result came from RenderFloat.
	Float bool
	// Decpt is the position of the decimal point relative to the first
	// digit of a float result. Zero or less means leading zeros follow the
	// point, more than the digit count means trailing zeros precede it.
	Decpt int
	// Special is "inf" or "nan" (or upper case) for non-finite floats.
	Special string
}

// Digits returns the rendered digits, most significant first.
func (r *Result) Digits() []byte {
	return r.buf[r.start : r.start+r.n]
}

// Len returns the number of digits.
func (r *Result) Len() int { return r.n }

// Digit returns the k-th digit counting from the most significant one, or
// '0' when k is outside the rendered digits.
func (r *Result) Digit(k int) byte {
	if k < 0 || k >= r.n {
		return '0'
	}
	return r.buf[r.start+k]
}

// String returns the undecorated text of r: sign, prefix and digits for
// integers; sign and the complete fixed point expansion for floats.
func (r *Result) String() string {
	var b []byte
	if r.Sign != 0 {
		b = append(b, r.Sign)
	}
	if r.Special != "" {
		return string(append(b, r.Special...))
	}
	if !r.Float {
		b = append(b, r.Prefix...)
		return string(append(b, r.Digits()...))
	}
	if r.Decpt <= 0 {
		b = append(b, '0')
	} else {
		for k := 0; k < r.Decpt; k++ {
			b = append(b, r.Digit(k))
		}
	}
	if r.n > r.Decpt {
		b = append(b, '.')
		for k := r.Decpt; k < r.n; k++ {
			b = append(b, r.Digit(k))
		}
	}
	return string(b)
}

// Truncate keeps the low bits of v. Widths other than 8, 16 and 32 leave v
// untouched.
func Truncate(v uint64, bits int) uint64 {
	switch bits {
	case 8:
		return v & 0xff
	case 16:
		return v & 0xffff
	case 32:
		return v & 0xffffffff
	}
	return v
}

// SignExtend reads the low bits of v as a two's complement number.
func SignExtend(v uint64, bits int) int64 {
	switch bits {
	case 8:
		return int64(int8(v))
	case 16:
		return int64(int16(v))
	case 32:
		return int64(int32(v))
	}
	return int64(v)
}

// RenderInteger renders the low bits of v in the base selected by o. When
// signed is set those bits are read as two's complement.
func RenderInteger(v uint64, signed bool, bits int, o Options) Result {
	var r Result
	v = Truncate(v, bits)
	neg := false
	if signed {
		if s := SignExtend(v, bits); s < 0 {
			neg = true
			v = uint64(-s)
		}
	}
	base := uint64(o.NormalBase())
	digits := lowerDigits
	if o.Upper {
		digits = upperDigits
	}

	i := len(r.buf)
	if v == 0 {
		i--
		r.buf[i] = '0'
	}
	for v > 0 {
		i--
		r.buf[i] = digits[v%base]
		v /= base
	}
	r.start, r.n = i, len(r.buf)-i
	r.Sign = o.sign(neg)

	if o.Alternate {
		switch base {
		case 2:
			r.Prefix = "0b"
			if o.Upper {
				r.Prefix = "0B"
			}
		case 8:
			if r.buf[r.start] != '0' {
				r.Prefix = "0"
			}
		case 16:
			r.Prefix = "0x"
			if o.Upper {
				r.Prefix = "0X"
			}
		}
	}
	return r
}

// RenderFloat expands v into decimal digits and a decimal point position.
//
// The integer part is peeled off by repeated division by ten, the fraction
// by repeated multiplication. Extraction stops after MaxDigits digits or
// once the remaining fraction is below machine epsilon. The last digit is
// never rounded.
func RenderFloat(v float64, o Options) Result {
	r := Result{Float: true}
	neg := math.Signbit(v)
	if neg {
		v = -v
	}
	r.Sign = o.sign(neg)

	switch {
	case math.IsNaN(v):
		r.Special = "nan"
	case math.IsInf(v, 0):
		r.Special = "inf"
	}
	if r.Special != "" {
		if o.Upper {
			r.Special = upper(r.Special)
		}
		return r
	}

	ip, fp := math.Modf(v)
	n := 0
	primed := false
	switch {
	case ip > 0:
		var scratch [maxIntDigits]byte
		k := len(scratch)
		for ip >= 1 && k > 0 {
			q := math.Floor(ip / 10)
			k--
			scratch[k] = '0' + clampDigit(ip-q*10)
			ip = q
		}
		r.Decpt = len(scratch) - k
		n = copy(r.buf[:], scratch[k:])
	case fp > 0:
		for i := 0; i < maxLeadingZeros; i++ {
			fp *= 10
			if fp >= 1 {
				break
			}
			r.Decpt--
		}
		primed = true
	default:
		r.buf[0] = '0'
		r.n, r.Decpt = 1, 1
		return r
	}

	for n < len(r.buf) {
		if !primed {
			if fp < epsilon {
				break
			}
			fp *= 10
		}
		primed = false
		d := clampDigit(fp)
		fp -= float64(d)
		r.buf[n] = '0' + d
		n++
	}
	r.n = n
	return r
}

func clampDigit(f float64) byte {
	switch {
	case f < 0:
		return 0
	case f >= 9:
		return 9
	}
	return byte(f)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
