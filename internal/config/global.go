// Package config provides loading and validation of the ffl launcher settings.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/tessro/ffl/internal/paths"
)

// EnvPrefix is the prefix for environment overrides. Keys follow the field
// path: FFL_BROWSER_COMMAND, FFL_LIFECYCLE_SHUTDOWN_GRACE, ...
const EnvPrefix = "FFL"

// Default values for settings that are not present in config.toml.
const (
	DefaultBrowserCommand = "firefox"
	DefaultBinarySuffix   = "/firefox"
	DefaultShutdownGrace  = 10 * time.Second
	DefaultLogLevel       = "info"
)

// Settings represents the launcher configuration (config.toml).
type Settings struct {
	// Browser describes the managed application.
	Browser BrowserConfig `toml:"browser"`

	// Modes locates the per-profile mode configuration.
	Modes ModesConfig `toml:"modes"`

	// Lifecycle tunes the reconciler.
	Lifecycle LifecycleConfig `toml:"lifecycle"`

	// Log controls the structured log file.
	Log LogConfig `toml:"log"`

	// Metrics controls the optional Prometheus endpoint.
	Metrics MetricsConfig `toml:"metrics"`
}

// BrowserConfig describes how to launch and recognize the browser.
type BrowserConfig struct {
	// Command is the executable launched for a profile (looked up in PATH).
	Command string `toml:"command"`
	// BinarySuffix must terminate argv[0] of a running instance.
	BinarySuffix string `toml:"binary_suffix" split_words:"true"`
	// Home is the profile root holding profiles.ini (e.g. ~/.mozilla/firefox).
	Home string `toml:"home"`
}

// ModesConfig locates the mode configuration file.
type ModesConfig struct {
	// Path is the JSON (or YAML) list of {Name, Mode} records.
	Path string `toml:"path"`
	// Watch reloads modes when the file changes.
	Watch bool `toml:"watch"`
}

// LifecycleConfig tunes the reconciler.
type LifecycleConfig struct {
	// ShutdownGrace is how long ShuttingDown is held before the close
	// request is re-evaluated.
	ShutdownGrace time.Duration `toml:"shutdown_grace" split_words:"true"`
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `toml:"addr"`
}

// Default returns the settings used when config.toml is absent.
func Default() *Settings {
	s := &Settings{
		Browser: BrowserConfig{
			Command:      DefaultBrowserCommand,
			BinarySuffix: DefaultBinarySuffix,
		},
		Lifecycle: LifecycleConfig{
			ShutdownGrace: DefaultShutdownGrace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  paths.LogPath(),
		},
	}
	if home, err := paths.BrowserHome(); err == nil {
		s.Browser.Home = home
	}
	if modes, err := paths.ModesPath(); err == nil {
		s.Modes.Path = modes
	}
	return s
}

// Load reads the settings file at the default location, then applies
// environment overrides.
func Load() (*Settings, error) {
	path, err := paths.SettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads settings from path on top of Default(), then applies
// environment overrides. A missing file is not an error.
func LoadFromPath(path string) (*Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, s); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := envconfig.Process(EnvPrefix, s); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	s.expandHome()
	return s, nil
}

// WriteTOML encodes the settings as TOML.
func (s *Settings) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// expandHome resolves a leading "~/" in path settings.
func (s *Settings) expandHome() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for _, p := range []*string{&s.Browser.Home, &s.Modes.Path, &s.Log.File} {
		if len(*p) >= 2 && (*p)[:2] == "~/" {
			*p = filepath.Join(home, (*p)[2:])
		}
	}
}
