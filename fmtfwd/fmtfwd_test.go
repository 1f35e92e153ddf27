package fmtfwd_test

import (
	"fmt"
	"io"
	"testing"

	"code.gopub.tech/cfmt/fmtfwd"
)

type conv byte

func (c conv) Format(s fmt.State, verb rune) {
	plain, format := fmtfwd.MakeFormat(s, byte(c))
	if plain {
		io.WriteString(s, "plain:")
	}
	io.WriteString(s, format)
}

func TestMakeFormat(t *testing.T) {
	tests := []struct {
		format string
		c      conv
		want   string
	}{
		{"%v", 'd', "plain:%d"},
		{"%v", 's', "plain:%s"},
		{"%x", 'x', "plain:%x"},
		{"%5v", 'd', "%5d"},
		{"%.3v", 'f', "%.3f"},
		{"%+-#v", 'x', "%+-#x"},
		{"% 08.2v", 'f', "% 08.2f"},
		{"%-10s", 'u', "%-10u"},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf(tt.format, tt.c); got != tt.want {
			t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
