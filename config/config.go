// Package config loads eqsolve settings from defaults, an eqsolve.yaml
// file, EQSOLVE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/source"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "EQSOLVE_"

	// maxUpwardSearchLevels limits how far up the directory tree to look
	// for a config file.
	maxUpwardSearchLevels = 10
)

var fileNames = []string{"eqsolve.yaml", "eqsolve.yml"}

type Config struct {
	Output     string        `koanf:"output"`
	Precision  int           `koanf:"precision"`
	ShowSystem bool          `koanf:"show_system"`
	Strict     bool          `koanf:"strict"`
	Timeout    time.Duration `koanf:"timeout"`
	MaxBytes   int64         `koanf:"max_bytes"`
	Verbosity  int           `koanf:"verbosity"`
	Addr       string        `koanf:"addr"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"output":      "text",
		"precision":   -1,
		"show_system": true,
		"strict":      false,
		"timeout":     source.DefaultTimeout.String(),
		"max_bytes":   source.DefaultMaxBytes,
		"verbosity":   0,
		"addr":        ":8080",
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	k := koanf.New(".")
	// Both calls only fail on malformed input, and the defaults are fixed.
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}

// Load builds a Config. cfgFile may be empty, in which case eqsolve.yaml or
// eqsolve.yml is searched for from the working directory upward. Only
// flags that were set on the command line override other sources; flag
// names map to keys by replacing "-" with "_".
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if wd, err := os.Getwd(); err == nil {
			cfgFile = findConfigFileUpward(wd)
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// EQSOLVE_SHOW_SYSTEM -> show_system
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// -v is a counter; its total is the log verbosity.
			if key == "verbose" {
				key = "verbosity"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = cfgFile
	return &cfg, nil
}

func findConfigFileUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Validate checks values that decoding alone cannot reject.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(format.Names(), c.Output) {
		errs = append(errs, fmt.Errorf("output %q is not one of %s", c.Output, strings.Join(format.Names(), ", ")))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("max_bytes must not be negative, got %d", c.MaxBytes))
	}
	if c.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity))
	}
	if err := errors.Join(errs...); err != nil {
		if c.File != "" {
			return fmt.Errorf("invalid configuration (%s): %w", c.File, err)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// FormatOptions returns the encoder options for c.
func (c *Config) FormatOptions() format.Options {
	return format.Options{Precision: c.Precision}
}

// Fetcher returns a source.Fetcher honoring the timeout and size limit.
// opts are applied after those two.
func (c *Config) Fetcher(opts ...source.Option) *source.Fetcher {
	opts = append([]source.Option{source.WithTimeout(c.Timeout), source.WithMaxBytes(c.MaxBytes)}, opts...)
	return source.NewFetcher(opts...)
}
