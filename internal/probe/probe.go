// Package probe reads process facts from the OS process table.
//
// Every read is side-effect free, and every failure degrades to the most
// conservative answer (StatusDown, not alive, not grouped) instead of
// returning an error.
package probe

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/prometheus/procfs"
)

// WarmupThreshold is the minimum uptime before an instance is considered
// safe to suspend or treat as steady-state.
const WarmupThreshold = 300 * time.Second

// Status is the process-table view of a profile instance.
type Status int

const (
	StatusDown Status = iota
	StatusWarming
	StatusWarmed
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusDown:
		return "down"
	case StatusWarming:
		return "warming"
	case StatusWarmed:
		return "warmed"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Fact is the result of inspecting a pid on behalf of a profile.
type Fact struct {
	Status Status
	Uptime time.Duration
}

// Config configures a Probe.
type Config struct {
	// ProcRoot is the procfs mount point. Defaults to /proc.
	ProcRoot string

	// BinarySuffix must terminate argv[0] (e.g. "/firefox").
	BinarySuffix string

	// Now returns the wall-clock time. Defaults to time.Now.
	Now func() time.Time
}

// Probe inspects processes through procfs.
type Probe struct {
	fs     procfs.FS
	suffix string
	now    func() time.Time
}

// New creates a Probe rooted at cfg.ProcRoot.
func New(cfg Config) (*Probe, error) {
	root := cfg.ProcRoot
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Probe{fs: fs, suffix: cfg.BinarySuffix, now: now}, nil
}

// Inspect classifies pid as an instance of profile.
//
// The process is accepted only if argv[0] ends with the binary suffix and
// the last argument equals the profile name exactly; anything else is
// treated as an unrelated process (pid reuse) and reported as down.
func (p *Probe) Inspect(pid int, profile string) Fact {
	proc, stat, ok := p.live(pid)
	if !ok {
		return Fact{Status: StatusDown}
	}

	argv, err := proc.CmdLine()
	if err != nil || len(argv) == 0 {
		return Fact{Status: StatusDown}
	}
	if !strings.HasSuffix(argv[0], p.suffix) || argv[len(argv)-1] != profile {
		slog.Debug("pid does not belong to profile",
			"pid", pid, "profile", profile, "argv0", argv[0])
		return Fact{Status: StatusDown}
	}

	started, err := stat.StartTime()
	if err != nil {
		return Fact{Status: StatusDown}
	}
	sec, frac := math.Modf(started)
	uptime := p.now().Sub(time.Unix(int64(sec), int64(frac*1e9)))

	return Fact{Status: classify(uptime, stat.State), Uptime: uptime}
}

// classify maps uptime and the procfs run state to a Status.
func classify(uptime time.Duration, state string) Status {
	if uptime < WarmupThreshold {
		return StatusWarming
	}
	if state == "T" {
		return StatusStopped
	}
	return StatusWarmed
}

// Alive reports whether pid exists and is neither a zombie nor dead.
func (p *Probe) Alive(pid int) bool {
	_, _, ok := p.live(pid)
	return ok
}

// SameGroup reports whether both pids are readable and share a process group.
func (p *Probe) SameGroup(a, b int) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	if a == b {
		return p.Alive(a)
	}
	_, sa, ok := p.live(a)
	if !ok {
		return false
	}
	_, sb, ok := p.live(b)
	if !ok {
		return false
	}
	return sa.PGRP == sb.PGRP
}

// LockPID reads the profile's runtime lock marker. See ReadLockPID.
func (p *Probe) LockPID(path string) (int, bool) {
	return ReadLockPID(path)
}

func (p *Probe) live(pid int) (procfs.Proc, procfs.ProcStat, bool) {
	if pid <= 0 {
		return procfs.Proc{}, procfs.ProcStat{}, false
	}
	proc, err := p.fs.Proc(pid)
	if err != nil {
		return procfs.Proc{}, procfs.ProcStat{}, false
	}
	stat, err := proc.Stat()
	if err != nil {
		return procfs.Proc{}, procfs.ProcStat{}, false
	}
	if stat.State == "Z" || stat.State == "X" {
		return procfs.Proc{}, procfs.ProcStat{}, false
	}
	return proc, stat, true
}
