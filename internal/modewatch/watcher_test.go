package modewatch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/ffl/internal/profile"
)

type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) push(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

var profiles = []profile.Profile{{Name: "work"}, {Name: "play"}, {Name: "bank"}}

func newWatcher(t *testing.T, path string, rec *recorder) *Watcher {
	t.Helper()
	w, err := New(Config{
		Path:     path,
		Profiles: profiles,
		Initial: map[string]profile.Mode{
			"work": profile.ModeAuto,
			"play": profile.ModeOff,
		},
		Push:     rec.push,
		Debounce: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	return w
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestReload_PushesOnlyChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	rec := &recorder{}
	w := newWatcher(t, path, rec)
	defer w.fs.Close()

	write(t, path, `[
		// work is unchanged
		{"Name": "work", "Mode": "Auto"},
		{"Name": "play", "Mode": "On"},
		{"Name": "bank", "Mode": "Suspend"},
	]`)
	w.Reload()
	assert.Equal(t, []string{"set bank suspend", "set play on"}, rec.Lines())

	w.Reload()
	assert.Len(t, rec.Lines(), 2, "unchanged file pushes nothing")
}

func TestReload_MalformedIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	rec := &recorder{}
	w := newWatcher(t, path, rec)
	defer w.fs.Close()

	write(t, path, `[{"Name": "work", "Mode": "Sometimes"}]`)
	w.Reload()
	assert.Empty(t, rec.Lines())
}

func TestReload_RemovedFileRevertsToAsIs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	rec := &recorder{}
	w := newWatcher(t, path, rec)
	defer w.fs.Close()

	w.Reload()
	assert.Equal(t, []string{"set play asis", "set work asis"}, rec.Lines())
}

func TestRun_ReactsToWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	write(t, path, `[{"Name": "work", "Mode": "Auto"}, {"Name": "play", "Mode": "Off"}]`)

	rec := &recorder{}
	w := newWatcher(t, path, rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Unrelated files in the same directory are ignored.
	write(t, filepath.Join(dir, "other.json"), `[]`)
	write(t, path, `[{"Name": "work", "Mode": "On"}, {"Name": "play", "Mode": "Off"}]`)

	require.Eventually(t, func() bool { return len(rec.Lines()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"set work on"}, rec.Lines())
}
