package render

// DigitValue returns the value of c as a digit in bases up to 16, or 16 when
// c is not a digit at all.
func DigitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 16
}

// DetectBase sniffs the base of an unsigned digit string: 0x or 0X selects
// 16, 0b or 0B selects 2, a leading 0 selects 8 and anything else 10.
// prefix is the number of bytes to skip before the digits. A two byte
// prefix only counts when a digit of its base follows it.
func DetectBase(s string) (base, prefix int) {
	if len(s) == 0 || s[0] != '0' {
		return 10, 0
	}
	if len(s) >= 3 {
		switch s[1] {
		case 'x', 'X':
			if DigitValue(s[2]) < 16 {
				return 16, 2
			}
		case 'b', 'B':
			if DigitValue(s[2]) < 2 {
				return 2, 2
			}
		}
	}
	return 8, 0
}

// ParseUint parses s in the given base. Base 0 detects the base from the
// prefix; base 16 and base 2 also accept their own prefix. A leading '-'
// negates the result modulo 2^64, like strtoull. The result is truncated to
// bits. ok is false when s holds no digits or an invalid one.
func ParseUint(s string, base, bits int) (v uint64, ok bool) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if base == 0 {
		var skip int
		base, skip = DetectBase(s)
		s = s[skip:]
	} else if b, skip := DetectBase(s); skip > 0 && b == base {
		s = s[skip:]
	}
	switch base {
	case 2, 8, 10, 16:
	default:
		return 0, false
	}
	if len(s) == 0 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		d := DigitValue(s[i])
		if d >= base {
			return 0, false
		}
		v = v*uint64(base) + uint64(d)
	}
	if neg {
		v = -v
	}
	return Truncate(v, bits), true
}

// ParseInt is ParseUint with the result read as a two's complement number of
// the given width.
func ParseInt(s string, base, bits int) (int64, bool) {
	v, ok := ParseUint(s, base, bits)
	if !ok {
		return 0, false
	}
	return SignExtend(v, bits), true
}
