// Package config loads and saves the pflow TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/pflow/internal/model"
)

// TodayEnv overrides the current date, for reproducible output.
const TodayEnv = "PFLOW_TODAY"

// Config holds all pflow configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Session    SessionConfig    `toml:"session"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ReportLatencyMs int    `toml:"report_latency_ms"`
	Seed            bool   `toml:"seed"`
	DateOverride    string `toml:"date_override,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds settings for the local daemon.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// SessionConfig holds the login flag. It is a UI toggle, not a credential.
type SessionConfig struct {
	Authenticated bool `toml:"authenticated"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			ReportLatencyMs: 2000,
			Seed:            true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8797",
			EventsBuffer: 200,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pflow")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// SetAuthenticated flips the login flag and persists it.
func SetAuthenticated(on bool) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Session.Authenticated = on
	return Save(cfg)
}

// ReportLatency returns the simulated report generation delay.
func (c Config) ReportLatency() time.Duration {
	if c.General.ReportLatencyMs < 0 {
		return 0
	}
	return time.Duration(c.General.ReportLatencyMs) * time.Millisecond
}

// Today resolves the calendar date used for deadline math. The first
// non-empty of flag, $PFLOW_TODAY, and date_override wins; otherwise the
// local date from now is used.
func (c Config) Today(flag string, now time.Time) (time.Time, error) {
	for _, src := range []struct{ name, value string }{
		{"--today", flag},
		{TodayEnv, os.Getenv(TodayEnv)},
		{"date_override", c.General.DateOverride},
	} {
		if strings.TrimSpace(src.value) == "" {
			continue
		}
		d, err := model.ParseDate("date", src.value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", src.name, err)
		}
		return d, nil
	}
	return model.DateOf(now), nil
}
