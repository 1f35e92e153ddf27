package cfmt_test

import (
	"fmt"
	"testing"

	"code.gopub.tech/cfmt"
)

func TestC(t *testing.T) {
	tests := []struct {
		format string
		arg    any
		want   string
	}{
		{"%v", 42, "42"},
		{"%v", -42, "-42"},
		{"%v", uint8(200), "200"},
		{"%5v|", 7, "    7|"},
		{"%-5v|", 7, "7    |"},
		{"%+v", 7, "+7"},
		{"%v", 1.5, "1.500000"},
		{"%.2v", 2.0 / 3, "0.66"},
		{"%8.3f", 2.5, "   2.500"},
		{"%v", "hi", "hi"},
		{"%6v|", "hi", "    hi|"},
		{"%.1s", "hi", "h"},
		{"%#x", 255, "0xff"},
		{"%08b", 5, "00000101"},
		{"%o", 8, "10"},
		{"%c", 'A', "A"},
		{"%q", 1, "%!q(int)"},
		{"%n", 1, "%!n(int)"},
		{"%v", struct{}{}, "%!v(struct {})"},
		{"%d", "str", "%!d(string)"},
		{"%v", (*cfmt.StopError)(nil), "(null)"},
		{"%8s", (*cfmt.StopError)(nil), "  (null)"},
	}
	for _, tt := range tests {
		got := fmt.Sprintf(tt.format, cfmt.C(tt.arg))
		if got != tt.want {
			t.Errorf("Sprintf(%q, C(%v)) = %q, want %q", tt.format, tt.arg, got, tt.want)
		}
	}
}

func TestCValue(t *testing.T) {
	c := cfmt.C(3)
	if c.Value() != 3 {
		t.Errorf("Value() = %v", c.Value())
	}
	// fmt 舍入的地方引擎直接截断
	if got, std := fmt.Sprintf("%.2f", cfmt.C(2.0/3)), fmt.Sprintf("%.2f", 2.0/3); got == std {
		t.Errorf("C and fmt agree on %q", got)
	}
}
