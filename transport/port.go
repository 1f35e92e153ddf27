package transport

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
	tty "github.com/mattn/go-tty"
)

// Port is a Writer over a device that has to be closed.
type Port struct {
	*Writer
	closer io.Closer
	name   string
}

// Name returns the device the port was opened on.
func (p *Port) Name() string { return p.name }

// Close flushes pending output and closes the device.
func (p *Port) Close() error {
	ferr := p.Flush()
	if err := p.closer.Close(); err != nil {
		return fmt.Errorf("transport: close %s: %w", p.name, err)
	}
	return ferr
}

// SerialConfig describes a serial line. Zero DataBits and StopBits mean
// 8 and 1.
type SerialConfig struct {
	PortName string
	BaudRate uint
	DataBits uint
	StopBits uint
}

func (c SerialConfig) options() serial.OpenOptions {
	o := serial.OpenOptions{
		PortName:        c.PortName,
		BaudRate:        c.BaudRate,
		DataBits:        c.DataBits,
		StopBits:        c.StopBits,
		MinimumReadSize: 1,
	}
	if o.DataBits == 0 {
		o.DataBits = 8
	}
	if o.StopBits == 0 {
		o.StopBits = 1
	}
	return o
}

// OpenSerial opens a serial line for console output.
func OpenSerial(c SerialConfig) (*Port, error) {
	if c.PortName == "" {
		return nil, fmt.Errorf("transport: serial port name is empty")
	}
	if c.BaudRate == 0 {
		return nil, fmt.Errorf("transport: serial %s: baud rate is zero", c.PortName)
	}
	port, err := serial.Open(c.options())
	if err != nil {
		return nil, fmt.Errorf("transport: serial open %s: %w", c.PortName, err)
	}
	return &Port{Writer: NewWriter(port), closer: port, name: c.PortName}, nil
}

// OpenTTY opens a terminal for console output: the controlling terminal
// when device is empty, otherwise the named device.
func OpenTTY(device string) (*Port, error) {
	var (
		t   *tty.TTY
		err error
	)
	if device == "" {
		t, err = tty.Open()
		device = "tty"
	} else {
		t, err = tty.OpenDevice(device)
	}
	if err != nil {
		return nil, fmt.Errorf("transport: tty open %s: %w", device, err)
	}
	return &Port{Writer: NewWriter(t.Output()), closer: t, name: device}, nil
}
