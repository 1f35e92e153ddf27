package render_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.gopub.tech/cfmt/render"
)

func TestRenderInteger(t *testing.T) {
	tests := []struct {
		name   string
		v      uint64
		signed bool
		bits   int
		opts   render.Options
		want   string
	}{
		{"zero", 0, true, 64, render.Options{Base: 10}, "0"},
		{"decimal", 123456789, true, 64, render.Options{Base: 10}, "123456789"},
		{"negative", uint64(1<<64 - 10), true, 64, render.Options{Base: 10}, "-10"},
		{"min int64", 1 << 63, true, 64, render.Options{Base: 10}, "-9223372036854775808"},
		{"force sign", 7, true, 64, render.Options{Base: 10, ForceSign: true}, "+7"},
		{"space sign", 7, true, 64, render.Options{Base: 10, SpaceSign: true}, " 7"},
		{"force beats space", 7, true, 64, render.Options{Base: 10, ForceSign: true, SpaceSign: true}, "+7"},
		{"hex lower", 0xbeef, false, 64, render.Options{Base: 16}, "beef"},
		{"hex upper alt", 0xbeef, false, 64, render.Options{Base: 16, Upper: true, Alternate: true}, "0XBEEF"},
		{"hex alt", 12, false, 64, render.Options{Base: 16, Alternate: true}, "0xc"},
		{"octal alt", 8, false, 64, render.Options{Base: 8, Alternate: true}, "010"},
		{"octal alt zero", 0, false, 64, render.Options{Base: 8, Alternate: true}, "0"},
		{"binary alt", 5, false, 64, render.Options{Base: 2, Alternate: true}, "0b101"},
		{"decimal never prefixed", 5, false, 64, render.Options{Base: 10, Alternate: true}, "5"},
		{"bad base coerces to 10", 255, false, 64, render.Options{Base: 7}, "255"},
		{"int8 wraps", 0x1ff, true, 8, render.Options{Base: 10}, "-1"},
		{"uint16 truncates", 0x12345, false, 16, render.Options{Base: 16}, "2345"},
		{"int32 sign", 0xffffffff, true, 32, render.Options{Base: 10}, "-1"},
		{"unsigned keeps requested sign", uint64(1<<64 - 1), false, 64, render.Options{Base: 10, ForceSign: true}, "+18446744073709551615"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := render.RenderInteger(tt.v, tt.signed, tt.bits, tt.opts)
			assert.Equal(t, tt.want, r.String())
			assert.False(t, r.Float)
		})
	}
}

func TestRenderIntegerBase2Fits(t *testing.T) {
	r := render.RenderInteger(math.MaxUint64, false, 64, render.Options{Base: 2})
	require.Equal(t, 64, r.Len())
	for _, d := range r.Digits() {
		assert.Equal(t, byte('1'), d)
	}
}

type floatShape struct {
	Sign    byte
	Digits  string
	Decpt   int
	Special string
}

func shape(r render.Result) floatShape {
	return floatShape{Sign: r.Sign, Digits: string(r.Digits()), Decpt: r.Decpt, Special: r.Special}
}

func TestRenderFloat(t *testing.T) {
	tests := []struct {
		v    float64
		opts render.Options
		want floatShape
	}{
		{0, render.Options{}, floatShape{Digits: "0", Decpt: 1}},
		{1.5, render.Options{}, floatShape{Digits: "15", Decpt: 1}},
		{-2.25, render.Options{}, floatShape{Sign: '-', Digits: "225", Decpt: 1}},
		{0.5, render.Options{}, floatShape{Digits: "5", Decpt: 0}},
		{0.05, render.Options{}, floatShape{Digits: "5", Decpt: -1}},
		{0.1, render.Options{}, floatShape{Digits: "1", Decpt: 0}},
		{100, render.Options{ForceSign: true}, floatShape{Sign: '+', Digits: "100", Decpt: 3}},
		{math.Inf(1), render.Options{}, floatShape{Special: "inf"}},
		{math.Inf(-1), render.Options{Upper: true}, floatShape{Sign: '-', Special: "INF"}},
		{math.NaN(), render.Options{}, floatShape{Special: "nan"}},
	}
	for _, tt := range tests {
		got := shape(render.RenderFloat(tt.v, tt.opts))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("RenderFloat(%v) mismatch (-want +got):\n%s", tt.v, diff)
		}
	}
}

func TestRenderFloatDoesNotRound(t *testing.T) {
	// 1.1 is stored as 1.100000000000000088817..., every digit is kept.
	r := render.RenderFloat(1.1, render.Options{})
	require.Equal(t, 1, r.Decpt)
	assert.Equal(t, "1.1000000000000000888", r.String()[:21])
	assert.LessOrEqual(t, r.Len(), render.MaxDigits)
}

func TestRenderFloatHuge(t *testing.T) {
	r := render.RenderFloat(math.MaxFloat64, render.Options{})
	assert.Equal(t, 309, r.Decpt)
	assert.Equal(t, render.MaxDigits, r.Len())
	assert.Equal(t, byte('1'), r.Digit(0))
	assert.Equal(t, byte('0'), r.Digit(500))
}

func TestRenderFloatTiny(t *testing.T) {
	r := render.RenderFloat(5e-324, render.Options{})
	assert.Equal(t, -323, r.Decpt)
	assert.Equal(t, byte('4'), r.Digit(0))
}
