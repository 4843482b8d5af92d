package xwin

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

type fakeDisplay struct {
	active    xproto.Window
	activeErr error
	clients   []xproto.Window
	listErr   error
	pids      map[xproto.Window]int
	closeErr  error
	closed    []xproto.Window
}

func (d *fakeDisplay) ActiveWindow() (xproto.Window, error) { return d.active, d.activeErr }
func (d *fakeDisplay) ClientList() ([]xproto.Window, error) { return d.clients, d.listErr }

func (d *fakeDisplay) WindowPID(w xproto.Window) (int, error) {
	pid, ok := d.pids[w]
	if !ok {
		return 0, errors.New("no _NET_WM_PID")
	}
	return pid, nil
}

func (d *fakeDisplay) CloseWindow(w xproto.Window) error {
	d.closed = append(d.closed, w)
	return d.closeErr
}

func (d *fakeDisplay) Close() {}

func TestObserver_Refresh(t *testing.T) {
	d := &fakeDisplay{
		active:  0x200,
		clients: []xproto.Window{0x100, 0x200, 0x300},
		pids:    map[xproto.Window]int{0x100: 10, 0x200: 20},
	}
	o := NewObserver(d)
	o.Refresh()

	snap := o.Snapshot()
	if snap.FocusedPID != 20 {
		t.Errorf("FocusedPID = %d, want 20", snap.FocusedPID)
	}
	if len(snap.Clients) != 2 {
		t.Fatalf("Clients = %v, want 2 entries (unresolvable window skipped)", snap.Clients)
	}
	if snap.Clients[10] != 0x100 || snap.Clients[20] != 0x200 {
		t.Errorf("Clients = %v", snap.Clients)
	}
}

func TestObserver_RefreshReplacesSnapshot(t *testing.T) {
	d := &fakeDisplay{
		clients: []xproto.Window{0x100, 0x200},
		pids:    map[xproto.Window]int{0x100: 10, 0x200: 20},
	}
	o := NewObserver(d)
	o.Refresh()

	d.clients = []xproto.Window{0x200}
	o.Refresh()

	if _, ok := o.Snapshot().Clients[10]; ok {
		t.Error("closed window lingered after refresh")
	}
}

func TestObserver_FocusedPIDFailures(t *testing.T) {
	tests := []struct {
		name string
		d    *fakeDisplay
	}{
		{"property missing", &fakeDisplay{activeErr: errors.New("no _NET_ACTIVE_WINDOW")}},
		{"no active window", &fakeDisplay{active: 0}},
		{"active window without pid", &fakeDisplay{active: 0x500, pids: map[xproto.Window]int{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewObserver(tt.d).FocusedPID(); got != 0 {
				t.Errorf("FocusedPID() = %d, want 0", got)
			}
		})
	}
}

func TestObserver_ClientListFailure(t *testing.T) {
	d := &fakeDisplay{listErr: errors.New("no _NET_CLIENT_LIST")}
	if got := NewObserver(d).Clients(); len(got) != 0 {
		t.Errorf("Clients() = %v, want empty", got)
	}
}

func TestObserver_RequestClose(t *testing.T) {
	d := &fakeDisplay{
		clients: []xproto.Window{0x100},
		pids:    map[xproto.Window]int{0x100: 10},
	}
	o := NewObserver(d)
	o.Refresh()

	if !o.RequestClose(10) {
		t.Error("RequestClose(10) = false, want true")
	}
	if len(d.closed) != 1 || d.closed[0] != 0x100 {
		t.Errorf("closed = %v, want [0x100]", d.closed)
	}

	if o.RequestClose(99) {
		t.Error("RequestClose for unknown pid should report false")
	}
	if len(d.closed) != 1 {
		t.Error("unknown pid must not send a close message")
	}

	d.closeErr = errors.New("bad window")
	if o.RequestClose(10) {
		t.Error("failed send should report false")
	}
}

func TestObserver_SnapshotIsCopy(t *testing.T) {
	d := &fakeDisplay{
		clients: []xproto.Window{0x100},
		pids:    map[xproto.Window]int{0x100: 10},
	}
	o := NewObserver(d)
	o.Refresh()

	snap := o.Snapshot()
	delete(snap.Clients, 10)

	if !o.RequestClose(10) {
		t.Error("mutating a returned snapshot must not affect the observer")
	}
}
