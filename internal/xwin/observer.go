package xwin

import (
	"log/slog"
	"maps"

	"github.com/BurntSushi/xgb/xproto"
)

// Snapshot is the observed window state at one refresh.
type Snapshot struct {
	// FocusedPID owns the active window; 0 when unknown.
	FocusedPID int
	// Clients maps a pid to one of its top-level windows.
	Clients map[int]xproto.Window
}

// Observer keeps the latest Snapshot. It is owned by a single goroutine and
// is not safe for concurrent use.
type Observer struct {
	display Display
	snap    Snapshot
}

// NewObserver creates an Observer with an empty snapshot.
func NewObserver(d Display) *Observer {
	return &Observer{
		display: d,
		snap:    Snapshot{Clients: map[int]xproto.Window{}},
	}
}

// Refresh replaces the snapshot wholesale. Entries are never patched so a
// window closed between polls cannot linger.
func (o *Observer) Refresh() {
	o.snap = Snapshot{
		FocusedPID: o.FocusedPID(),
		Clients:    o.Clients(),
	}
}

// Snapshot returns a copy of the current snapshot.
func (o *Observer) Snapshot() Snapshot {
	return Snapshot{
		FocusedPID: o.snap.FocusedPID,
		Clients:    maps.Clone(o.snap.Clients),
	}
}

// FocusedPID resolves the active window to its owning pid. It returns 0 if
// there is no active window or the pid cannot be read.
func (o *Observer) FocusedPID() int {
	w, err := o.display.ActiveWindow()
	if err != nil || w == 0 {
		return 0
	}
	pid, err := o.display.WindowPID(w)
	if err != nil {
		return 0
	}
	return pid
}

// Clients maps each top-level client's pid to its window. Windows without a
// readable pid are skipped.
func (o *Observer) Clients() map[int]xproto.Window {
	clients := map[int]xproto.Window{}
	windows, err := o.display.ClientList()
	if err != nil {
		slog.Debug("read client list failed", "error", err)
		return clients
	}
	for _, w := range windows {
		pid, err := o.display.WindowPID(w)
		if err != nil || pid <= 0 {
			continue
		}
		clients[pid] = w
	}
	return clients
}

// RequestClose asks the window of pid to close. It returns false when the
// pid has no known window, which is normal while an instance is still
// starting up.
func (o *Observer) RequestClose(pid int) bool {
	w, ok := o.snap.Clients[pid]
	if !ok {
		slog.Info("no window to close", "pid", pid)
		return false
	}
	if err := o.display.CloseWindow(w); err != nil {
		slog.Debug("close request failed", "pid", pid, "window", w, "error", err)
		return false
	}
	slog.Debug("close requested", "pid", pid, "window", w)
	return true
}
