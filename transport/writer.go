// Package transport provides console consumers for the formatting engine:
// byte-at-a-time writers over an io.Writer, a serial line or the
// controlling terminal.
package transport

import (
	"bufio"
	"fmt"
	"io"
)

// Writer buffers single characters for an io.Writer. Its Putc method is
// the consumer handed to cfmt.Register, and it is a cfmt.Sink itself.
//
// Write errors are sticky: after the first one Putc drops characters and
// Err reports it.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Putc queues one character.
func (w *Writer) Putc(c byte) {
	if w.err != nil {
		return
	}
	if err := w.w.WriteByte(c); err != nil {
		w.err = fmt.Errorf("transport: write: %w", err)
	}
}

// PutByte implements cfmt.Sink.
func (w *Writer) PutByte(c byte) { w.Putc(c) }

// Flush writes out the queued characters.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.err = fmt.Errorf("transport: flush: %w", err)
	}
	return w.err
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}
