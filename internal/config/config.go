// Package config loads revgantt settings: built-in defaults, then an optional
// YAML file, then REVGANTT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath        string        `yaml:"db"`
	Listen        string        `yaml:"listen"`
	AutosaveDelay time.Duration `yaml:"-"`
	AutosaveMs    int           `yaml:"autosave_ms"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`

	// envErrs holds environment values that could not be parsed; validate
	// reports them with the rest.
	envErrs []string
}

// Default returns the settings used when nothing is configured. The database
// lives under ~/.revgantt.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DBPath:        filepath.Join(home, ".revgantt", "revgantt.db"),
		Listen:        "127.0.0.1:8080",
		AutosaveDelay: 3 * time.Second,
		AutosaveMs:    3000,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// DefaultPath is the config file read when REVGANTT_CONFIG is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".revgantt", "config.yaml")
	}
	return filepath.Join(home, ".revgantt", "config.yaml")
}

// Load builds the effective config. A missing config file is not an error;
// a config file given through REVGANTT_CONFIG must exist.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("REVGANTT_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads YAML bytes over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	c.AutosaveDelay = time.Duration(c.AutosaveMs) * time.Millisecond
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("REVGANTT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("REVGANTT_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("REVGANTT_AUTOSAVE_MS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			c.envErrs = append(c.envErrs, fmt.Sprintf("REVGANTT_AUTOSAVE_MS %q is not a whole number of milliseconds", v))
		} else {
			c.AutosaveMs = n
			c.AutosaveDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("REVGANTT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("REVGANTT_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

func (c *Config) validate() error {
	errs := append([]string(nil), c.envErrs...)
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "db is required")
	}
	if strings.TrimSpace(c.Listen) == "" {
		errs = append(errs, "listen is required")
	}
	if c.AutosaveMs < 0 {
		errs = append(errs, "autosave_ms must not be negative")
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format %q is not text or json", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds the process logger described by LogLevel and LogFormat.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels[strings.ToLower(c.LogLevel)]}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
