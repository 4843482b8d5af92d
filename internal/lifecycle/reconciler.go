package lifecycle

import (
	"log/slog"
	"time"

	"github.com/tessro/ffl/internal/event"
)

// DefaultShutdownGrace is how long ShuttingDown is held before the close
// request is re-evaluated.
const DefaultShutdownGrace = 10 * time.Second

// Transition reports one reconciliation step that changed something: either
// the observed state moved, or an action was issued.
type Transition struct {
	Profile string
	PID     int
	From    State
	To      State
	Action  Action
	Err     error
}

// Config configures a Reconciler.
type Config struct {
	Prober   Prober
	Actuator Actuator

	// ShutdownGrace defaults to DefaultShutdownGrace.
	ShutdownGrace time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Reconciler drives instances toward their modes.
type Reconciler struct {
	prober   Prober
	actuator Actuator
	grace    time.Duration
	now      func() time.Time
	events   event.Emitter[Transition]
}

// New creates a Reconciler.
func New(cfg Config) *Reconciler {
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = DefaultShutdownGrace
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Reconciler{
		prober:   cfg.Prober,
		actuator: cfg.Actuator,
		grace:    cfg.ShutdownGrace,
		now:      cfg.Now,
	}
}

// Subscribe registers fn for every Transition.
func (r *Reconciler) Subscribe(fn func(Transition)) (unsubscribe func()) {
	return r.events.Subscribe(fn)
}

// Reconcile observes the instance and applies at most one action.
// focusedPID is the owner of the active window (0 if none).
func (r *Reconciler) Reconcile(in *Instance, focusedPID int) {
	now := r.now()
	before := in.State

	in.Observe(r.prober, focusedPID, now, r.grace)
	if in.State != before {
		slog.Debug("state observed",
			"profile", in.Name, "pid", in.PID, "from", before, "to", in.State)
		r.events.Emit(Transition{Profile: in.Name, PID: in.PID, From: before, To: in.State})
	}

	observed := in.State
	action, err := in.Apply(r.actuator, now)
	if err != nil {
		slog.Warn("action failed",
			"profile", in.Name, "state", observed, "mode", in.Mode, "error", err)
		r.events.Emit(Transition{Profile: in.Name, From: observed, To: in.State, Action: ActionLaunch, Err: err})
		return
	}
	if action == ActionNone {
		return
	}

	slog.Info("action issued",
		"profile", in.Name, "pid", in.PID, "action", action,
		"mode", in.Mode, "from", observed, "to", in.State)
	r.events.Emit(Transition{Profile: in.Name, PID: in.PID, From: observed, To: in.State, Action: action})
}

// ReconcileAll reconciles every instance against the same focus snapshot.
func (r *Reconciler) ReconcileAll(instances []*Instance, focusedPID int) {
	for _, in := range instances {
		r.Reconcile(in, focusedPID)
	}
}
