// Package launcher runs the reconciliation loop: it owns the managed
// instances, ticks them once a second and executes prompt commands between
// ticks.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tessro/ffl/internal/command"
	"github.com/tessro/ffl/internal/lifecycle"
	"github.com/tessro/ffl/internal/profile"
	"github.com/tessro/ffl/internal/xwin"
)

// ErrExit is returned by Run when the user asks the launcher to exit.
var ErrExit = errors.New("exit requested")

// DefaultInterval is the fixed tick cadence.
const DefaultInterval = time.Second

// Observer is the windowing view the loop refreshes every tick.
type Observer interface {
	Refresh()
	Snapshot() xwin.Snapshot
}

// Config configures a Loop.
type Config struct {
	// Instances are the managed profiles. Names must be unique.
	Instances []*lifecycle.Instance

	Observer   Observer
	Reconciler *lifecycle.Reconciler
	Queue      *Queue

	// Output receives every user-facing message.
	Output io.Writer

	// Interval defaults to DefaultInterval.
	Interval time.Duration

	// AfterTick, if set, is called from the loop goroutine after every
	// reconciliation pass.
	AfterTick func(instances []*lifecycle.Instance)
}

// Loop owns the instance table. Only the goroutine running Run touches it.
type Loop struct {
	instances map[string]*lifecycle.Instance
	order     []*lifecycle.Instance // sorted by name

	observer   Observer
	reconciler *lifecycle.Reconciler
	queue      *Queue
	out        io.Writer
	list       *listWriter
	interval   time.Duration
	afterTick  func([]*lifecycle.Instance)
}

// New creates a Loop.
func New(cfg Config) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Queue == nil {
		cfg.Queue = NewQueue()
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}

	l := &Loop{
		instances:  make(map[string]*lifecycle.Instance, len(cfg.Instances)),
		observer:   cfg.Observer,
		reconciler: cfg.Reconciler,
		queue:      cfg.Queue,
		out:        cfg.Output,
		list:       newListWriter(cfg.Output),
		interval:   cfg.Interval,
		afterTick:  cfg.AfterTick,
	}
	for _, in := range cfg.Instances {
		l.instances[in.Name] = in
		l.order = append(l.order, in)
	}
	slices.SortFunc(l.order, func(a, b *lifecycle.Instance) int {
		return strings.Compare(a.Name, b.Name)
	})

	l.reconciler.Subscribe(l.reportFailure)
	return l
}

// Queue returns the command queue fed by the front ends.
func (l *Loop) Queue() *Queue {
	return l.queue
}

// Run reconciles every instance once, then ticks until ctx is cancelled or
// an exit command is executed. It returns ErrExit or ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	slog.Info("reconciliation loop started", "profiles", len(l.order), "interval", l.interval)
	l.reconcile()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reconciliation loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := l.Tick(); err != nil {
				return err
			}
		}
	}
}

// Tick runs one reconciliation pass, then executes every queued command.
func (l *Loop) Tick() error {
	l.reconcile()
	for _, line := range l.queue.Drain() {
		if err := l.Execute(line); err != nil {
			return err
		}
	}
	return nil
}

// Execute parses and runs one command line. Only exit returns an error.
func (l *Loop) Execute(line string) error {
	cmd, ok := command.Parse(line)
	if !ok {
		return nil
	}
	slog.Debug("command", "line", line)

	switch c := cmd.(type) {
	case command.Set:
		l.set(c)
	case command.List:
		l.list.write(l.order)
	case command.Shutdown:
		l.shutdown()
	case command.Help:
		command.WriteHelp(l.out)
	case command.Exit:
		return ErrExit
	case command.Unknown:
		fmt.Fprintf(l.out, "Unknown command: %s\n", c.Text)
	default:
		panic(fmt.Sprintf("launcher: unhandled command %T", cmd))
	}
	return nil
}

func (l *Loop) reconcile() {
	l.observer.Refresh()
	l.reconciler.ReconcileAll(l.order, l.observer.Snapshot().FocusedPID)
	if l.afterTick != nil {
		l.afterTick(l.order)
	}
}

func (l *Loop) set(c command.Set) {
	in, ok := l.instances[c.Name]
	if !ok {
		fmt.Fprintf(l.out, "No profile named %s\n", c.Name)
		return
	}
	mode, err := profile.ParseMode(c.Mode)
	if err != nil {
		fmt.Fprintf(l.out, "No such mode %s\n", c.Mode)
		return
	}

	slog.Info("mode set", "profile", in.Name, "from", in.Mode, "to", mode)
	in.Mode = mode
	l.observer.Refresh()
	l.reconciler.Reconcile(in, l.observer.Snapshot().FocusedPID)
}

func (l *Loop) shutdown() {
	slog.Info("shutting down every profile")
	l.observer.Refresh()
	focused := l.observer.Snapshot().FocusedPID
	for _, in := range l.order {
		in.Mode = profile.ModeOff
		l.reconciler.Reconcile(in, focused)
	}
}

func (l *Loop) reportFailure(t lifecycle.Transition) {
	if t.Err != nil {
		fmt.Fprintf(l.out, "Failed to %s %s: %v\n", t.Action, t.Profile, t.Err)
	}
}
