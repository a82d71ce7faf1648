// Package config loads the settings of the runstego command.
//
// Values are layered: built-in defaults, then a YAML file, then RUNSTEGO_*
// environment variables (a .env file in the working directory is loaded
// first, without overriding variables already set). Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "RUNSTEGO_"

type Config struct {
	// MinRun is the minimum run length M.
	MinRun int `yaml:"min_run"`
	// Plane is one of binary, threshold and lsb.
	Plane string `yaml:"plane"`
	// Threshold is the cutoff of the threshold plane, 1 to 255.
	Threshold int  `yaml:"threshold"`
	Strict    bool `yaml:"strict"`

	// ECC enables Golay error correction shuffled with Seed.
	ECC      bool  `yaml:"ecc"`
	Seed     int64 `yaml:"seed"`
	Compress bool  `yaml:"compress"`

	// MaxMinRun is the largest minimum run length reported by survey.
	MaxMinRun int    `yaml:"max_min_run"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MinRun:    4,
		Plane:     "binary",
		Threshold: 128,
		Seed:      1234567890,
		MaxMinRun: 8,
		LogLevel:  "info",
	}
}

// Load returns the defaults overridden by the YAML file at path, if path is
// not empty, and by the environment. RUNSTEGO_CONFIG names the file when
// path is empty.
func Load(path string) (*Config, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv(envPrefix + "CONFIG"))
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(envPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	setInt := func(name string, dst *int) {
		if raw, ok := lookup(name); ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = v
		}
	}
	setBool := func(name string, dst *bool) {
		if raw, ok := lookup(name); ok {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = v
		}
	}

	setInt("MIN_RUN", &c.MinRun)
	if raw, ok := lookup("PLANE"); ok {
		c.Plane = strings.ToLower(raw)
	}
	setInt("THRESHOLD", &c.Threshold)
	setBool("STRICT", &c.Strict)
	setBool("ECC", &c.ECC)
	if raw, ok := lookup("SEED"); ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", envPrefix, err))
		} else {
			c.Seed = v
		}
	}
	setBool("COMPRESS", &c.Compress)
	setInt("MAX_MIN_RUN", &c.MaxMinRun)
	if raw, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = raw
	}
	return errors.Join(errs...)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.MinRun < 1 {
		errs = append(errs, fmt.Errorf("min_run must be at least 1, got %d", c.MinRun))
	}
	planes := []string{"binary", "threshold", "lsb"}
	switch c.Plane {
	case "binary", "lsb":
	case "threshold":
		if c.Threshold < 1 || c.Threshold > 255 {
			errs = append(errs, fmt.Errorf("threshold must be between 1 and 255, got %d", c.Threshold))
		}
	default:
		errs = append(errs, fmt.Errorf("plane must be one of: %v", planes))
	}
	if c.MaxMinRun < 1 {
		errs = append(errs, fmt.Errorf("max_min_run must be at least 1, got %d", c.MaxMinRun))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
