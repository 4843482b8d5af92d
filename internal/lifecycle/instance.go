package lifecycle

import (
	"time"

	"github.com/tessro/ffl/internal/probe"
	"github.com/tessro/ffl/internal/profile"
)

// Prober supplies process facts.
type Prober interface {
	// LockPID reads the pid recorded by a profile's lock marker.
	LockPID(path string) (int, bool)
	// Inspect classifies pid as an instance of the named profile.
	Inspect(pid int, profile string) probe.Fact
	// Alive reports whether pid is a live process.
	Alive(pid int) bool
	// SameGroup reports whether two pids share a process group.
	SameGroup(a, b int) bool
}

// Actuator performs the fire-and-forget actions.
type Actuator interface {
	Launch(profile string) (int, error)
	Suspend(pid int)
	Resume(pid int)
	// RequestClose reports false if no close request could be sent.
	RequestClose(pid int) bool
}

// Instance is the reconciler's record for one managed profile.
//
// PID is non-zero exactly when State is not Down, and Focused is false
// whenever PID is zero.
type Instance struct {
	Name     string
	Mode     profile.Mode
	State    State
	PID      int
	Focused  bool
	LockPath string

	// launchedAt is when the instance entered StartingUp.
	launchedAt time.Time
	// closeRequestedAt is when the instance entered ShuttingDown.
	closeRequestedAt time.Time
}

// StartupTimeout bounds how long StartingUp is held for a launched process
// that never shows up behind the lock marker.
const StartupTimeout = 60 * time.Second

// NewInstance creates a Down instance for p.
func NewInstance(p profile.Profile, mode profile.Mode, browserHome string) *Instance {
	return &Instance{
		Name:     p.Name,
		Mode:     mode.Normalize(),
		State:    Down,
		LockPath: p.LockPath(browserHome),
	}
}

// Observe re-derives PID, State and Focused from scratch.
//
// The two launcher-local states are kept until the OS view catches up:
// StartingUp while the lock marker does not name the launched process yet
// and that process is alive, up to StartupTimeout; ShuttingDown while the
// same process is still running and the grace period since the close
// request has not passed.
func (in *Instance) Observe(pr Prober, focusedPID int, now time.Time, grace time.Duration) {
	pid, state := 0, Down
	lockPID, locked := pr.LockPID(in.LockPath)
	if locked {
		if s := fromStatus(pr.Inspect(lockPID, in.Name).Status); s != Down {
			pid, state = lockPID, s
		}
	}

	switch in.State {
	case StartingUp:
		// A marker naming the launched pid is final: the probe decides.
		// Any other marker is stale from an earlier run.
		pending := !locked || lockPID != in.PID
		if state == Down && pending && pr.Alive(in.PID) &&
			now.Sub(in.launchedAt) < StartupTimeout {
			pid, state = in.PID, StartingUp
		}
	case ShuttingDown:
		if state != Down && pid == in.PID && now.Sub(in.closeRequestedAt) < grace {
			state = ShuttingDown
		}
	}

	in.PID, in.State = pid, state
	in.Focused = pid != 0 && focusedPID != 0 &&
		(focusedPID == pid || pr.SameGroup(focusedPID, pid))
}

// Apply issues the action Decide picks for the current observation and
// records the optimistic resulting state. It returns the action actually
// issued, or ActionNone. The only error is a failed launch, which leaves the
// instance Down.
func (in *Instance) Apply(act Actuator, now time.Time) (Action, error) {
	action, next := Decide(in.State, in.Mode, in.Focused)

	switch action {
	case ActionNone:
		return ActionNone, nil

	case ActionLaunch:
		pid, err := act.Launch(in.Name)
		if err != nil {
			return ActionNone, err
		}
		in.PID = pid
		in.launchedAt = now

	case ActionSuspend:
		act.Suspend(in.PID)

	case ActionResume:
		act.Resume(in.PID)

	case ActionClose:
		if !act.RequestClose(in.PID) {
			return ActionNone, nil
		}
		in.closeRequestedAt = now

	case ActionResumeAndClose:
		act.Resume(in.PID)
		if !act.RequestClose(in.PID) {
			// Thawed but no window to close yet; the next tick sees it
			// running and retries the close.
			in.State = Warmed
			return ActionResume, nil
		}
		in.closeRequestedAt = now
	}

	in.State = next
	return action, nil
}
