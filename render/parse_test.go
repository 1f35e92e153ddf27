package render_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.gopub.tech/cfmt/render"
)

func TestDetectBase(t *testing.T) {
	tests := []struct {
		in           string
		base, prefix int
	}{
		{"", 10, 0},
		{"123", 10, 0},
		{"0", 8, 0},
		{"017", 8, 0},
		{"0x1f", 16, 2},
		{"0X1F", 16, 2},
		{"0xg", 8, 0},
		{"0b101", 2, 2},
		{"0b2", 8, 0},
	}
	for _, tt := range tests {
		base, prefix := render.DetectBase(tt.in)
		assert.Equal(t, tt.base, base, "base of %q", tt.in)
		assert.Equal(t, tt.prefix, prefix, "prefix of %q", tt.in)
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		in   string
		base int
		bits int
		want uint64
		ok   bool
	}{
		{"42", 10, 64, 42, true},
		{"+42", 10, 64, 42, true},
		{"ff", 16, 64, 255, true},
		{"0xff", 16, 64, 255, true},
		{"0xff", 0, 64, 255, true},
		{"017", 0, 64, 15, true},
		{"0b11", 0, 64, 3, true},
		{"0b11", 2, 64, 3, true},
		{"-1", 10, 64, math.MaxUint64, true},
		{"-1", 10, 8, 0xff, true},
		{"256", 10, 8, 0, true},
		{"18446744073709551616", 10, 64, 0, true},
		{"", 10, 64, 0, false},
		{"-", 10, 64, 0, false},
		{"12a", 10, 64, 0, false},
		{"8", 8, 64, 0, false},
		{"1", 7, 64, 0, false},
	}
	for _, tt := range tests {
		got, ok := render.ParseUint(tt.in, tt.base, tt.bits)
		assert.Equal(t, tt.ok, ok, "ParseUint(%q, %d, %d)", tt.in, tt.base, tt.bits)
		assert.Equal(t, tt.want, got, "ParseUint(%q, %d, %d)", tt.in, tt.base, tt.bits)
	}
}

func TestParseInt(t *testing.T) {
	v, ok := render.ParseInt("-0x80", 16, 64)
	require.True(t, ok)
	assert.Equal(t, int64(-128), v)

	v, ok = render.ParseInt("0x80", 16, 8)
	require.True(t, ok)
	assert.Equal(t, int64(-128), v)

	_, ok = render.ParseInt("x", 16, 64)
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 7, -42, 255, 1 << 31, -(1 << 40), math.MaxInt64, math.MinInt64}
	for _, base := range []int{2, 8, 10, 16} {
		for _, alt := range []bool{false, true} {
			for _, v := range values {
				opts := render.Options{Base: base, Alternate: alt}
				r := render.RenderInteger(uint64(v), true, 64, opts)
				got, ok := render.ParseInt(r.String(), base, 64)
				require.True(t, ok, "parse %q", r.String())
				assert.Equal(t, v, got, "base %d text %q", base, r.String())
			}
		}
	}
}
