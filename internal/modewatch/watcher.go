// Package modewatch turns edits of the mode configuration file into set
// commands for the reconciliation loop.
package modewatch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tessro/ffl/internal/logging"
	"github.com/tessro/ffl/internal/profile"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Path is the mode configuration file.
	Path string

	// Profiles are the managed profiles.
	Profiles []profile.Profile

	// Initial is the mode each profile was started with.
	Initial map[string]profile.Mode

	// Push receives one command line per changed profile.
	Push func(line string)

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
}

// Watcher reloads the mode file when it changes and pushes a set command
// for every profile whose configured mode differs from the last load.
type Watcher struct {
	path     string
	names    []string
	current  map[string]profile.Mode
	profiles []profile.Profile
	push     func(string)
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// New creates a Watcher. The parent directory is watched rather than the
// file so that editors that replace the file on save are still seen.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	path := filepath.Clean(cfg.Path)
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     path,
		current:  make(map[string]profile.Mode, len(cfg.Profiles)),
		profiles: cfg.Profiles,
		push:     cfg.Push,
		debounce: cfg.Debounce,
		fs:       fs,
	}
	for _, p := range cfg.Profiles {
		w.names = append(w.names, p.Name)
		w.current[p.Name] = cfg.Initial[p.Name].Normalize()
	}
	slices.Sort(w.names)
	return w, nil
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer logging.LogPanic("mode-watcher", nil)
	defer w.fs.Close()

	slog.Info("watching mode config", "path", w.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || (ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("mode watcher error", "error", err)

		case <-fire:
			fire = nil
			w.Reload()
		}
	}
}

// Reload re-reads the mode file and pushes a set command for every profile
// whose mode changed. A malformed file is logged and ignored; a removed
// file means every profile reverts to asis.
func (w *Watcher) Reload() {
	records, err := profile.LoadModes(w.path)
	if err != nil {
		slog.Warn("mode config reload failed", "path", w.path, "error", err)
		return
	}

	modes := profile.ResolveModes(w.profiles, records)
	for _, name := range w.names {
		mode := modes[name]
		if mode == w.current[name] {
			continue
		}
		if strings.ContainsAny(name, " \t") {
			slog.Warn("cannot set mode for profile with whitespace in its name", "profile", name)
			continue
		}
		slog.Info("mode config changed", "profile", name, "from", w.current[name], "to", mode)
		w.current[name] = mode
		w.push(fmt.Sprintf("set %s %s", name, strings.ToLower(mode.String())))
	}
}
