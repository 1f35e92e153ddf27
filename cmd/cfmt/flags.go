package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Output      string
	Capped      int
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("CFMT_CONFIG", ""),
		"Path to YAML configuration file (env: CFMT_CONFIG)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("CFMT_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: CFMT_LOG_LEVEL, default warn)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("CFMT_LOG_FORMAT", ""),
		"Log format: json, text (env: CFMT_LOG_FORMAT, default text)")

	fs.StringVar(&cfg.Output, "output",
		getEnv("CFMT_OUTPUT", ""),
		"Console output: stdout, tty, serial (env: CFMT_OUTPUT)")

	fs.IntVar(&cfg.Capped, "capped",
		getEnvInt("CFMT_CAPPED", 0),
		"Format into a buffer of this many bytes first, 0 for no cap (env: CFMT_CAPPED)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	fs.Usage = func() {
		printDetailedHelp(fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.LogLevel != "" && !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "" && !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.Output != "" && !contains(validOutputs, cfg.Output) {
		return fmt.Errorf("invalid output: %s", cfg.Output)
	}

	if cfg.Capped < 0 {
		return fmt.Errorf("invalid capped size: %d", cfg.Capped)
	}
	return nil
}

func printDetailedHelp(fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(os.Stderr, `%s - C style formatted output and scanning

Usage:
  %s [options] print FORMAT [ARG...]
  %s [options] scan INPUT FORMAT

Options:
`, appName, os.Args[0], os.Args[0])
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Format to standard output
  %s print '<%%-6s|%%#x>\n' name 255

  # Format through a 16 byte buffer, the way snprintf would
  %s -capped 16 print '%%s\n' 'a rather long line'

  # Scan values out of text
  %s scan '14:05' '%%d:%%02d'

  # Write to a serial console described in a config file
  export CFMT_CONFIG=/etc/cfmt.yaml
  %s -output serial print 'hello\n'

Version: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version)
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "text"}
)

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
