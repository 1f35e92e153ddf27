/*
module github.com/knz/go-fmtfwd

MIT License

Copyright (c) 2020 kena

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package fmtfwd rebuilds a C style directive from the formatting state Go's
// fmt package hands to a fmt.Formatter.
package fmtfwd

import (
	"fmt"
	"strconv"
	"strings"
)

// MakeFormat reproduces the directive currently active in fmt.State as
// C style text: flags, width, precision and conv. conv replaces Go's verb,
// which may have no C counterpart (%v).
//
// This is needed because Go's standard fmt.State does not make the
// original format string available to us.
//
// If the return value plain is true the state carries no flags, width or
// precision at all; callers can take a shortcut.
func MakeFormat(s fmt.State, conv byte) (plain bool, format string) {
	plus, minus, hash, sp, z := s.Flag('+'), s.Flag('-'), s.Flag('#'), s.Flag(' '), s.Flag('0')
	w, wp := s.Width()
	p, pp := s.Precision()

	if !plus && !minus && !hash && !sp && !z && !wp && !pp {
		switch conv {
		case 'd':
			return true, "%d"
		case 's':
			return true, "%s"
		}
		// Other cases handled in the slow path below.
		plain = true
	}

	var f strings.Builder
	f.WriteByte('%')
	if plus {
		f.WriteByte('+')
	}
	if minus {
		f.WriteByte('-')
	}
	if hash {
		f.WriteByte('#')
	}
	if sp {
		f.WriteByte(' ')
	}
	if z {
		f.WriteByte('0')
	}
	if wp {
		f.WriteString(strconv.Itoa(w))
	}
	if pp {
		f.WriteByte('.')
		f.WriteString(strconv.Itoa(p))
	}
	f.WriteByte(conv)
	return plain, f.String()
}
