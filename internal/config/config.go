// Package config loads timereport settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/timereport/internal/domain"
)

// Config holds all settings of the server, the terminal client and the
// batch commands.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Client   ClientConfig   `yaml:"client"`
	Export   ExportConfig   `yaml:"export"`
	Times    TimesConfig    `yaml:"times"`
	Holidays HolidaysConfig `yaml:"holidays"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Listen      string `yaml:"listen"`
	FrontendDir string `yaml:"frontend_dir"`
}

type ClientConfig struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ExportConfig struct {
	Dir     string `yaml:"dir"`
	XeLaTeX string `yaml:"xelatex"`
}

// TimesConfig holds times of day as HH:MM strings.
type TimesConfig struct {
	Min          string `yaml:"min"`
	Max          string `yaml:"max"`
	DefaultStart string `yaml:"default_start"`
	DefaultEnd   string `yaml:"default_end"`
}

type HolidaysConfig struct {
	PublicURL string `yaml:"public_url"`
	SchoolURL string `yaml:"school_url"`
	State     string `yaml:"state"`
}

// DefaultConfig returns the settings used when neither file nor
// environment say otherwise. Paths live below ~/.timereport.
func DefaultConfig() Config {
	base := ".timereport"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".timereport")
	}
	return Config{
		Database: DatabaseConfig{Path: filepath.Join(base, "timereport.db")},
		Server:   ServerConfig{Listen: "127.0.0.1:8000"},
		Client:   ClientConfig{APIURL: "http://127.0.0.1:8000/api", Timeout: 10 * time.Second},
		Export:   ExportConfig{Dir: filepath.Join(base, "export"), XeLaTeX: "xelatex"},
		Times: TimesConfig{
			Min:          "12:30",
			Max:          "16:00",
			DefaultStart: domain.DefaultStart.String(),
			DefaultEnd:   domain.DefaultEnd.String(),
		},
		Holidays: HolidaysConfig{
			PublicURL: "https://feiertage-api.de/api/",
			SchoolURL: "https://ferien-api.de/api/v1/holidays",
			State:     "NW",
		},
		LogLevel: "info",
	}
}

// DefaultPath is the config file consulted when none is given.
func DefaultPath() string {
	if v := os.Getenv("TIMEREPORT_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "timereport.yaml"
	}
	return filepath.Join(home, ".timereport", "config.yaml")
}

// Load reads path over the defaults, then applies TIMEREPORT_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set("TIMEREPORT_DB", &cfg.Database.Path)
	set("TIMEREPORT_LISTEN", &cfg.Server.Listen)
	set("TIMEREPORT_FRONTEND_DIR", &cfg.Server.FrontendDir)
	set("TIMEREPORT_API_URL", &cfg.Client.APIURL)
	set("TIMEREPORT_EXPORT_DIR", &cfg.Export.Dir)
	set("TIMEREPORT_XELATEX", &cfg.Export.XeLaTeX)
	set("TIMEREPORT_MIN_TIME", &cfg.Times.Min)
	set("TIMEREPORT_MAX_TIME", &cfg.Times.Max)
	set("TIMEREPORT_HOLIDAY_STATE", &cfg.Holidays.State)
	set("TIMEREPORT_LOG_LEVEL", &cfg.LogLevel)
	if v := os.Getenv("TIMEREPORT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Client.Timeout = d
		}
	}
}

// Validate checks that every time of day parses and the window is ordered.
func (c Config) Validate() error {
	for key, v := range map[string]string{
		"times.min":           c.Times.Min,
		"times.max":           c.Times.Max,
		"times.default_start": c.Times.DefaultStart,
		"times.default_end":   c.Times.DefaultEnd,
	} {
		if _, err := domain.ParseClock(v); err != nil {
			return fmt.Errorf("config %s: %w", key, err)
		}
	}
	lo, hi := c.MinTime(), c.MaxTime()
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return fmt.Errorf("config times: max %s before min %s", hi, lo)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// MinTime and friends return the parsed clocks; Validate guarantees they parse.
func (c Config) MinTime() domain.Clock {
	t, _ := domain.ParseClock(c.Times.Min)
	return t
}

func (c Config) MaxTime() domain.Clock {
	t, _ := domain.ParseClock(c.Times.Max)
	return t
}

func (c Config) DefaultStart() domain.Clock {
	t, _ := domain.ParseClock(c.Times.DefaultStart)
	return t
}

func (c Config) DefaultEnd() domain.Clock {
	t, _ := domain.ParseClock(c.Times.DefaultEnd)
	return t
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config log_level: unknown level %q", c.LogLevel)
}
