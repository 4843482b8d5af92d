// Package lifecycle implements the per-profile reconciliation state machine.
//
// The machine is level-triggered: each tick re-derives an instance's state
// from the lock marker, the process table and the window snapshot, then
// takes at most one action toward the instance's mode.
package lifecycle

import (
	"github.com/tessro/ffl/internal/probe"
	"github.com/tessro/ffl/internal/profile"
)

// State is the observed lifecycle state of a profile instance.
type State int

const (
	Down State = iota
	StartingUp
	Warming
	Warmed
	Suspended
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Down:
		return "Down"
	case StartingUp:
		return "StartingUp"
	case Warming:
		return "Warming"
	case Warmed:
		return "Warmed"
	case Suspended:
		return "Suspended"
	case ShuttingDown:
		return "ShuttingDown"
	default:
		return "Unknown"
	}
}

// States lists every state, in lifecycle order.
var States = []State{Down, StartingUp, Warming, Warmed, Suspended, ShuttingDown}

// fromStatus maps a probe status onto the lifecycle.
func fromStatus(s probe.Status) State {
	switch s {
	case probe.StatusWarming:
		return Warming
	case probe.StatusWarmed:
		return Warmed
	case probe.StatusStopped:
		return Suspended
	default:
		return Down
	}
}

// Action is a state-changing operation issued by the reconciler.
type Action int

const (
	ActionNone Action = iota
	ActionLaunch
	ActionSuspend
	ActionResume
	ActionClose
	// ActionResumeAndClose thaws a suspended instance and asks it to close.
	// It counts as one action: a stopped process cannot handle a close request.
	ActionResumeAndClose
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLaunch:
		return "launch"
	case ActionSuspend:
		return "suspend"
	case ActionResume:
		return "resume"
	case ActionClose:
		return "close"
	case ActionResumeAndClose:
		return "resume+close"
	default:
		return "unknown"
	}
}

// Actions lists every state-changing action.
var Actions = []Action{ActionLaunch, ActionSuspend, ActionResume, ActionClose, ActionResumeAndClose}

// Decide returns the action to take for an instance in state with the given
// mode and focus, and the state the instance moves to once it is issued.
func Decide(state State, mode profile.Mode, focused bool) (Action, State) {
	switch state {
	case Down:
		switch mode {
		case profile.ModeAuto, profile.ModeOn, profile.ModeSuspend:
			return ActionLaunch, StartingUp
		}

	case Warming:
		if mode == profile.ModeOff {
			return ActionClose, ShuttingDown
		}

	case Warmed:
		switch mode {
		case profile.ModeAuto:
			if !focused {
				return ActionSuspend, Suspended
			}
		case profile.ModeOff:
			return ActionClose, ShuttingDown
		case profile.ModeSuspend:
			return ActionSuspend, Suspended
		}

	case Suspended:
		switch mode {
		case profile.ModeAuto:
			if focused {
				return ActionResume, Warmed
			}
		case profile.ModeOn:
			return ActionResume, Warmed
		case profile.ModeOff:
			return ActionResumeAndClose, ShuttingDown
		}
	}

	// StartingUp and ShuttingDown are transient: wait for the OS view.
	return ActionNone, state
}
