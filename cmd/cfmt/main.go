// Package main implements cfmt, a command line front end for the C style
// formatting engine: print formats arguments to a console, scan reads
// values back out of text.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"code.gopub.tech/cfmt"
	"code.gopub.tech/cfmt/transport"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "cfmt"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("cfmt failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cli, err := parseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := validateFlags(cli); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if cli.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}
	if cli.ShowHelp {
		fs.Usage()
		return nil
	}

	cfg, err := loadConfig(cli.ConfigPath)
	if err != nil {
		return err
	}
	cfg.merge(cli)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := setupLogger(stderr, cfg.Log.Level, cfg.Log.Format)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	out, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	logger.Debug("console opened", "output", cfg.Output)

	var console cfmt.Console
	console.SetLogger(logger)
	console.Register(out.Putc)

	switch rest[0] {
	case "print":
		err = runPrint(&console, cfg.Buffer, rest[1:], logger)
	case "scan":
		err = runScan(&console, rest[1:], logger)
	default:
		err = fmt.Errorf("unknown command %q", rest[0])
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// output is a console consumer that has to be released.
type output interface {
	Putc(c byte)
	Close() error
}

// flushOnClose keeps standard output open.
type flushOnClose struct {
	*transport.Writer
}

func (f flushOnClose) Close() error { return f.Flush() }

func openOutput(cfg *Config, stdout io.Writer) (output, error) {
	switch cfg.Output {
	case "tty":
		return transport.OpenTTY(cfg.TTY)
	case "serial":
		return transport.OpenSerial(transport.SerialConfig{
			PortName: cfg.Serial.Port,
			BaudRate: cfg.Serial.Baud,
			DataBits: cfg.Serial.DataBits,
			StopBits: cfg.Serial.StopBits,
		})
	}
	return flushOnClose{transport.NewWriter(stdout)}, nil
}

var escapes = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\t`, "\t", `\r`, "\r")

// unescape expands the backslash escapes a shell leaves in place.
func unescape(s string) string {
	return escapes.Replace(s)
}

func runPrint(c *cfmt.Console, capacity int, args []string, logger *slog.Logger) error {
	if len(args) == 0 {
		return errors.New("print: missing FORMAT")
	}
	format := unescape(args[0])
	vals, err := printArgs(format, args[1:])
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}

	a := cfmt.NewArgs(vals...)
	var n int
	if capacity > 0 {
		buf := make([]byte, capacity)
		n = cfmt.Vsnprintf(buf, format, a)
		stored := n
		if stored > capacity-1 {
			stored = capacity - 1
		}
		c.Printf("%.*s", stored, buf)
		if n >= capacity {
			logger.Warn("output truncated", "capacity", capacity, "length", n)
		}
	} else {
		n = c.Vprintf(format, a)
	}
	logger.Debug("formatted", "count", n)

	for i, v := range vals {
		if p, ok := v.(*int); ok {
			logger.Info("count stored", "argument", i+1, "value", *p)
		}
	}
	if err := a.Err(); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	if r := a.Remaining(); r > 0 {
		logger.Warn("unused arguments", "count", r)
	}
	return nil
}

// printArgs converts command line words into the values the directives of
// format expect. Conversion stops when the words run out; the engine then
// reports the directive left without an argument.
func printArgs(format string, words []string) ([]any, error) {
	dirs, err := cfmt.Directives(format)
	if err != nil {
		return nil, err
	}
	var vals []any
	i := 0
	for _, d := range dirs {
		if d.Kind == cfmt.KindPercent {
			continue
		}
		need := 1
		if d.WidthFromArg {
			need++
		}
		if d.PrecFromArg {
			need++
		}
		if d.Kind == cfmt.KindCount {
			need--
		}
		if i+need > len(words) {
			break
		}
		for _, star := range []bool{d.WidthFromArg, d.PrecFromArg} {
			if !star {
				continue
			}
			v, ok := parseInt(words[i])
			if !ok {
				return nil, fmt.Errorf("argument %d (%q) for %s is not an integer", i+1, words[i], d)
			}
			vals = append(vals, v)
			i++
		}

		if d.Kind == cfmt.KindCount {
			vals = append(vals, new(int))
			continue
		}
		v, err := convert(d, words[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q) for %s: %w", i+1, words[i], d, err)
		}
		vals = append(vals, v)
		i++
	}
	return vals, nil
}

func convert(d cfmt.Directive, s string) (any, error) {
	switch d.Kind {
	case cfmt.KindString:
		return s, nil
	case cfmt.KindChar:
		if r := []rune(s); len(r) == 1 {
			return r[0], nil
		}
		if v, ok := parseInt(s); ok {
			return v, nil
		}
		return nil, errors.New("not a character")
	case cfmt.KindFloat:
		if v, ok := parseFloat(s); ok {
			return v, nil
		}
		return nil, errors.New("not a number")
	case cfmt.KindInt:
		if v, ok := parseInt(s); ok {
			return v, nil
		}
		return nil, errors.New("not an integer")
	case cfmt.KindPointer:
		if v, ok := parseHex(s); ok {
			return uintptr(v), nil
		}
		return nil, errors.New("not an address")
	}
	if v, ok := parseUint(s); ok {
		return v, nil
	}
	return nil, errors.New("not an integer")
}

// parseInt reads a whole word as an integer in any base %i accepts; %n
// tells how far the scan got.
func parseInt(s string) (int64, bool) {
	var v int64
	var end int
	return v, cfmt.Sscanf(s, "%lli%n", &v, &end) == 1 && end == len(s)
}

func parseUint(s string) (uint64, bool) {
	var v uint64
	var end int
	return v, cfmt.Sscanf(s, "%lli%n", &v, &end) == 1 && end == len(s)
}

// parseHex reads an address the way %p prints it, with or without 0x.
func parseHex(s string) (uint64, bool) {
	var v uint64
	var end int
	return v, cfmt.Sscanf(s, "%llx%n", &v, &end) == 1 && end == len(s)
}

func parseFloat(s string) (float64, bool) {
	var v float64
	var end int
	return v, cfmt.Sscanf(s, "%lf%n", &v, &end) == 1 && end == len(s)
}

func runScan(c *cfmt.Console, args []string, logger *slog.Logger) error {
	if len(args) != 2 {
		return errors.New("scan: want INPUT FORMAT")
	}
	input, format := args[0], unescape(args[1])
	slots, err := scanSlots(format)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	a := cfmt.NewArgs(slots...)
	n := cfmt.Vsscanf(input, format, a)
	c.Printf("matched %d\n", n)
	stored := len(slots) - a.Remaining()
	for i, s := range slots[:stored] {
		showSlot(c, i, s)
	}
	if err := a.Err(); err != nil {
		logger.Info("scan stopped early", "matched", n, "error", err.Error())
	}
	return nil
}

// scanSlots allocates one output slot per stored field of format.
func scanSlots(format string) ([]any, error) {
	fields, err := cfmt.Fields(format)
	if err != nil {
		return nil, err
	}
	var slots []any
	for _, f := range fields {
		if f.Suppress || f.Verb == '%' {
			continue
		}
		switch f.Verb {
		case 'd', 'i':
			slots = append(slots, new(int64))
		case 'u', 'o', 'x', 'X':
			slots = append(slots, new(uint64))
		case 'p':
			slots = append(slots, new(uintptr))
		case 'n':
			slots = append(slots, new(int))
		case 's', 'c', '[':
			slots = append(slots, new(string))
		default:
			slots = append(slots, new(float64))
		}
	}
	return slots, nil
}

func showSlot(c *cfmt.Console, i int, slot any) {
	switch p := slot.(type) {
	case *int64:
		c.Printf("%d: %lld\n", i, *p)
	case *uint64:
		c.Printf("%d: %llu\n", i, *p)
	case *uintptr:
		c.Printf("%d: %p\n", i, *p)
	case *int:
		c.Printf("%d: %d\n", i, *p)
	case *string:
		c.Printf("%d: %s\n", i, *p)
	case *float64:
		c.Printf("%d: %f\n", i, *p)
	}
}
