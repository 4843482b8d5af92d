// Package control launches browser profiles and freezes or thaws their
// process groups.
package control

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/tessro/ffl/internal/logging"
)

// ErrInvalidPID is returned for pids that cannot address a process group.
var ErrInvalidPID = errors.New("control: invalid pid")

// Config configures a Controller.
type Config struct {
	// Command is the browser executable, looked up in PATH. The launched
	// process gets the resolved absolute path as argv[0].
	Command string

	// BuildCommand creates the unstarted command for a profile. If nil,
	// runs "<Command> --no-remote -P <profile>".
	BuildCommand func(profile string) *exec.Cmd

	// Kill delivers a signal; defaults to unix.Kill.
	Kill func(pid int, sig unix.Signal) error
}

// Controller performs fire-and-forget process actions.
type Controller struct {
	config Config
	kill   func(pid int, sig unix.Signal) error
}

// New creates a Controller.
func New(config Config) *Controller {
	kill := config.Kill
	if kill == nil {
		kill = unix.Kill
	}
	return &Controller{config: config, kill: kill}
}

// Args returns the browser arguments selecting profile.
func Args(profile string) []string {
	return []string{"--no-remote", "-P", profile}
}

// Launch starts the browser for profile in a new session, so it leads its
// own process group and survives the launcher. The child is reaped in the
// background. Returns the pid of the started process.
func (c *Controller) Launch(profile string) (int, error) {
	var cmd *exec.Cmd
	if c.config.BuildCommand != nil {
		cmd = c.config.BuildCommand(profile)
	} else {
		// argv[0] must carry the full path: the probe recognizes instances
		// by its suffix.
		path, err := resolve(c.config.Command)
		if err != nil {
			return 0, fmt.Errorf("launch %s: %w", profile, err)
		}
		cmd = exec.Command(path, Args(profile)...)
	}
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("launch %s: %w", profile, err)
	}
	pid := cmd.Process.Pid
	slog.Info("launched profile", "profile", profile, "pid", pid)

	go func() {
		defer logging.LogPanic("reap-"+profile, nil)
		err := cmd.Wait()
		slog.Debug("profile process exited", "profile", profile, "pid", pid, "error", err)
	}()

	return pid, nil
}

// resolve looks command up in PATH and makes the result absolute.
func resolve(command string) (string, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

// Suspend stops the whole process group led by pid.
func (c *Controller) Suspend(pid int) {
	c.signalGroup(pid, unix.SIGSTOP)
}

// Resume continues the whole process group led by pid.
func (c *Controller) Resume(pid int) {
	c.signalGroup(pid, unix.SIGCONT)
}

// signalGroup sends sig to -pid. Delivery failures are logged and dropped;
// the next probe corrects the observed state.
func (c *Controller) signalGroup(pid int, sig unix.Signal) {
	if pid <= 1 {
		slog.Debug("refusing to signal group", "pid", pid, "signal", sig, "error", ErrInvalidPID)
		return
	}
	if err := c.kill(-pid, sig); err != nil {
		slog.Debug("signal delivery failed", "pid", pid, "signal", sig, "error", err)
		return
	}
	slog.Debug("signaled process group", "pid", pid, "signal", unix.SignalName(sig))
}
