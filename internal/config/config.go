// Package config loads color-tools settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/color-tools-mcp/internal/extract"
	"github.com/ironsheep/color-tools-mcp/internal/imaging"
	"github.com/ironsheep/color-tools-mcp/internal/scheme"
	"github.com/ironsheep/color-tools-mcp/internal/worker"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COLOR_MCP_"

// Config holds the configuration settings.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Extract ExtractConfig `yaml:"extract"`
	Scheme  SchemeConfig  `yaml:"scheme"`
	Worker  worker.Config `yaml:"worker"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
}

// ExtractConfig holds palette extraction defaults.
type ExtractConfig struct {
	MaxDimension int `yaml:"max_dimension"`
	Limit        int `yaml:"limit"`
}

// SchemeConfig holds scheme generation sizes.
type SchemeConfig struct {
	Steps int `yaml:"steps"`
	Count int `yaml:"count"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from a YAML file, applies COLOR_MCP_*
// environment overrides, then fills anything left unset with defaults.
// An empty filename or a missing file is not an error.
func Load(filename string) (*Config, error) {
	var cfg Config

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"MAX_DIMENSION", &c.Extract.MaxDimension},
		{"EXTRACT_LIMIT", &c.Extract.Limit},
		{"SCHEME_STEPS", &c.Scheme.Steps},
		{"SCHEME_COUNT", &c.Scheme.Count},
		{"WORKERS", &c.Worker.Workers},
		{"QUEUE_SIZE", &c.Worker.QueueSize},
	}
	for _, e := range ints {
		v := os.Getenv(EnvPrefix + e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s value: %w", EnvPrefix, e.name, err)
		}
		*e.dst = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Extract.MaxDimension == 0 {
		c.Extract.MaxDimension = imaging.DefaultMaxDimension
	}
	if c.Extract.Limit <= 0 {
		c.Extract.Limit = extract.DefaultLimit
	}
	if c.Scheme.Steps <= 0 {
		c.Scheme.Steps = scheme.DefaultSteps
	}
	if c.Scheme.Count <= 0 {
		c.Scheme.Count = scheme.DefaultCount
	}
	if c.Worker.Workers <= 0 {
		c.Worker.Workers = 1
	}
	if c.Worker.QueueSize <= 0 {
		c.Worker.QueueSize = 4
	}
}

// ParseLevel maps a level name to a slog.Level. Names are case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Generator returns a scheme generator sized by the configuration.
func (c *Config) Generator() scheme.Generator {
	return scheme.Generator{Steps: c.Scheme.Steps, Count: c.Scheme.Count}
}
