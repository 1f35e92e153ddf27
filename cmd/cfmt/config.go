package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var validOutputs = []string{"stdout", "tty", "serial"}

// Config is the optional YAML configuration file.
type Config struct {
	// Output selects the console: stdout, tty or serial.
	Output string       `yaml:"output"`
	Serial SerialConfig `yaml:"serial"`
	TTY    string       `yaml:"tty"`
	Log    LogConfig    `yaml:"log"`
	// Buffer is the capacity used when formatting is capped, 0 for none.
	Buffer int `yaml:"buffer"`
}

// SerialConfig describes the serial console.
type SerialConfig struct {
	Port     string `yaml:"port"`
	Baud     uint   `yaml:"baud"`
	DataBits uint   `yaml:"data_bits"`
	StopBits uint   `yaml:"stop_bits"`
}

// LogConfig holds logging defaults that flags and environment override.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Output: "stdout",
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			Baud:     115200,
			DataBits: 8,
			StopBits: 1,
		},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !contains(validOutputs, c.Output) {
		return fmt.Errorf("invalid output %q, want one of %v", c.Output, validOutputs)
	}
	if c.Output == "serial" {
		if c.Serial.Port == "" {
			return fmt.Errorf("serial.port is required")
		}
		if c.Serial.Baud == 0 {
			return fmt.Errorf("serial.baud must be positive")
		}
	}
	if !contains(validLevels, c.Log.Level) {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if !contains(validFormats, c.Log.Format) {
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	if c.Buffer < 0 {
		return fmt.Errorf("buffer must not be negative: %d", c.Buffer)
	}
	return nil
}

// merge applies command line settings on top of the file.
func (c *Config) merge(cli *CLIConfig) {
	if cli.Output != "" {
		c.Output = cli.Output
	}
	if cli.LogLevel != "" {
		c.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		c.Log.Format = cli.LogFormat
	}
	if cli.Capped > 0 {
		c.Buffer = cli.Capped
	}
}
