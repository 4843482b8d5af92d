// Package xwin observes top-level windows and focus through the X11 EWMH
// root-window properties.
package xwin

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Display is the subset of the window manager protocol the observer needs.
type Display interface {
	// ActiveWindow reads _NET_ACTIVE_WINDOW from the root window.
	ActiveWindow() (xproto.Window, error)
	// ClientList reads _NET_CLIENT_LIST from the root window.
	ClientList() ([]xproto.Window, error)
	// WindowPID reads _NET_WM_PID from a client window.
	WindowPID(w xproto.Window) (int, error)
	// CloseWindow sends a _NET_CLOSE_WINDOW client message for w.
	CloseWindow(w xproto.Window) error
	// Close releases the connection.
	Close()
}

// X11Display is a Display backed by a single long-lived X connection.
type X11Display struct {
	xu *xgbutil.XUtil
}

// Connect opens the display named by $DISPLAY.
func Connect() (*X11Display, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X display: %w", err)
	}
	return &X11Display{xu: xu}, nil
}

func (d *X11Display) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(d.xu)
}

func (d *X11Display) ClientList() ([]xproto.Window, error) {
	return ewmh.ClientListGet(d.xu)
}

func (d *X11Display) WindowPID(w xproto.Window) (int, error) {
	pid, err := ewmh.WmPidGet(d.xu, w)
	if err != nil {
		return 0, err
	}
	return int(pid), nil
}

// CloseWindow does not wait for the client to react.
func (d *X11Display) CloseWindow(w xproto.Window) error {
	return ewmh.CloseWindow(d.xu, w)
}

func (d *X11Display) Close() {
	d.xu.Conn().Close()
}
