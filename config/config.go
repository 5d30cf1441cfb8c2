// Package config loads the launcher settings from <profile>/config.toml.
// LAUNCHER_URL and LAUNCHER_TOKEN override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const filename = "config.toml"

// Environment overrides.
const (
	EnvURL   = "LAUNCHER_URL"
	EnvToken = "LAUNCHER_TOKEN"
)

// Config holds the launcher settings.
type Config struct {
	BackendURL string `toml:"backend_url"`
	Token      string `toml:"token,omitempty"`
	// Variant is "overlay" (toggled palette) or "launcher" (always on).
	Variant string `toml:"variant"`
	Theme   string `toml:"theme"`

	DebounceMS   int      `toml:"debounce_ms"`
	SearchLimit  int      `toml:"search_limit"`
	CommandCap   int      `toml:"command_cap"`
	HistoryTurns int      `toml:"history_turns"`
	FileAliases  []string `toml:"file_aliases"`

	Log LogConfig `toml:"log"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Debounce is DebounceMS as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		BackendURL:   "http://localhost:8000",
		Variant:      "overlay",
		Theme:        "dark",
		DebounceMS:   200,
		SearchLimit:  10,
		CommandCap:   5,
		HistoryTurns: 20,
		FileAliases:  []string{"files", "file", "find"},
		Log:          LogConfig{Level: "info"},
	}
}

// Path returns the config file location inside profileDir.
func Path(profileDir string) string {
	return filepath.Join(profileDir, filename)
}

// DefaultProfileDir is ~/.launcher, or ./.launcher when the home directory
// cannot be resolved.
func DefaultProfileDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".launcher"
	}
	return filepath.Join(home, ".launcher")
}

// Load reads <profileDir>/config.toml over the defaults and applies env
// overrides. A missing file is not an error. A malformed file returns the
// defaults together with the decode error.
func Load(profileDir string) (Config, error) {
	cfg := Defaults()
	var loadErr error
	if _, err := toml.DecodeFile(Path(profileDir), &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			cfg = Defaults()
			loadErr = fmt.Errorf("decode %s: %w", Path(profileDir), err)
		}
	}
	applyEnv(&cfg)
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(profileDir, "launcher.log")
	}
	cfg.normalize()
	return cfg, loadErr
}

// Save writes cfg to <profileDir>/config.toml, creating the directory if
// needed. The token is never persisted.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	cfg.Token = ""
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := Path(profileDir) + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, Path(profileDir)); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvURL)); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		cfg.Token = v
	}
}

func (c *Config) normalize() {
	d := Defaults()
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	if c.BackendURL == "" {
		c.BackendURL = d.BackendURL
	}
	switch c.Variant {
	case "overlay", "launcher":
	default:
		c.Variant = d.Variant
	}
	if c.DebounceMS <= 0 {
		c.DebounceMS = d.DebounceMS
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = d.SearchLimit
	}
	if c.CommandCap <= 0 {
		c.CommandCap = d.CommandCap
	}
	if c.HistoryTurns < 0 {
		c.HistoryTurns = 0
	}
	if len(c.FileAliases) == 0 {
		c.FileAliases = d.FileAliases
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
}
