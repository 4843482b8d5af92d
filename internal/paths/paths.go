// Package paths provides a single source of truth for ffl file paths.
// All path helpers honor environment variable overrides for isolated testing.
//
// Path resolution precedence:
//  1. Specific env vars (FFL_LOCK_PATH, FFL_BROWSER_HOME) take highest priority
//  2. FFL_DIR env var sets the base directory (derives config/lock/log/history)
//  3. Default behavior (~/.ffl, ~/.config/ffl, $XDG_RUNTIME_DIR/ffl)
package paths

import (
	"os"
	"path/filepath"
)

// Environment variable names for path overrides.
const (
	// EnvFflDir is the base directory override (e.g., /tmp/ffl-test).
	// When set, config, lock, log and history paths derive from this directory.
	EnvFflDir = "FFL_DIR"

	// EnvLockPath overrides the single-instance lock path directly.
	EnvLockPath = "FFL_LOCK_PATH"

	// EnvBrowserHome overrides the browser profile root (~/.mozilla/firefox).
	EnvBrowserHome = "FFL_BROWSER_HOME"
)

// browserDir is the browser profile root relative to $HOME.
const browserDir = ".mozilla/firefox"

// BaseDir returns the ffl base directory (~/.ffl by default).
// Honors FFL_DIR environment variable.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvFflDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ffl"), nil
}

// ConfigDir returns the ffl config directory.
// FFL_DIR/config when FFL_DIR is set, else $XDG_CONFIG_HOME/ffl, else ~/.config/ffl.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvFflDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ffl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ffl"), nil
}

// SettingsPath returns the path to the launcher settings file (config.toml).
func SettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ModesPath returns the default per-profile mode configuration (config.json).
func ModesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LockPath returns the single-instance lock path.
// Precedence: FFL_LOCK_PATH > FFL_DIR/ffl.lock > $XDG_RUNTIME_DIR/ffl/lock > ~/.ffl/ffl.lock
func LockPath() string {
	if path := os.Getenv(EnvLockPath); path != "" {
		return path
	}
	if dir := os.Getenv(EnvFflDir); dir != "" {
		return filepath.Join(dir, "ffl.lock")
	}
	if rt := os.Getenv("XDG_RUNTIME_DIR"); rt != "" {
		return filepath.Join(rt, "ffl", "lock")
	}
	base, err := BaseDir()
	if err != nil {
		return "/tmp/ffl.lock"
	}
	return filepath.Join(base, "ffl.lock")
}

// LogPath returns the default log file path (~/.ffl/ffl.log).
func LogPath() string {
	base, err := BaseDir()
	if err != nil {
		return "/tmp/ffl.log"
	}
	return filepath.Join(base, "ffl.log")
}

// HistoryPath returns the REPL history file path (~/.ffl/history).
func HistoryPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "history"), nil
}

// BrowserHome returns the browser profile root (~/.mozilla/firefox).
// Honors FFL_BROWSER_HOME.
func BrowserHome() (string, error) {
	if dir := os.Getenv(EnvBrowserHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, browserDir), nil
}
