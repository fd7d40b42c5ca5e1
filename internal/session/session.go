// Package session tracks a single timed mining session per subject.
//
// The machine moves Idle -> Active -> Resolving -> Idle. Leaving Resolving
// requires the ledger to confirm the reward, so a session can never be
// restarted while its reward is unconfirmed.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// State is the machine state
type State int

const (
	Idle State = iota
	Active
	Resolving
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Resolving:
		return "resolving"
	default:
		return "idle"
	}
}

// Errors returned by the machine
var (
	ErrSessionActive     = domain.ErrSessionActive
	ErrSessionResolving  = domain.ErrSessionResolving
	ErrNoActiveSession   = domain.ErrNoActiveSession
	ErrSessionIncomplete = domain.ErrSessionIncomplete
	ErrReasonMismatch    = fmt.Errorf("%w: reason does not match the resolving session", domain.ErrInvalidReason)
)

// Resolution freezes the economics of a completed session.
// Rate and Duration are taken from the config in effect when the session resolved.
type Resolution struct {
	StartTime  time.Time       `json:"start_time"`
	ResolvedAt time.Time       `json:"resolved_at"`
	Duration   time.Duration   `json:"duration"`
	Rate       decimal.Decimal `json:"rate"`
}

// Reason returns the idempotency reason of the session's reward
func (r Resolution) Reason() string {
	return domain.MiningReason(r.StartTime)
}

// Elapsed returns the wall-clock time between start and resolution
func (r Resolution) Elapsed() time.Duration {
	return r.ResolvedAt.Sub(r.StartTime)
}

// Progress is a read-only view of the session at a point in time
type Progress struct {
	State     State
	Elapsed   time.Duration
	Remaining time.Duration
}

// Done reports whether the countdown has reached zero
func (p Progress) Done() bool {
	return p.State == Active && p.Remaining == 0
}

// Machine is the session state machine. The zero value is Idle and ready to use.
type Machine struct {
	mu         sync.Mutex
	state      State
	startTime  time.Time
	resolution *Resolution
}

// NewMachine returns an Idle machine
func NewMachine() *Machine {
	return &Machine{}
}

// Start begins a session at now. Only valid from Idle.
func (m *Machine) Start(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Active:
		return ErrSessionActive
	case Resolving:
		return ErrSessionResolving
	}
	m.state = Active
	m.startTime = now
	return nil
}

// Tick reports progress without changing state
func (m *Machine) Tick(now time.Time, duration time.Duration) Progress {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Active:
		elapsed := now.Sub(m.startTime)
		if elapsed < 0 {
			elapsed = 0
		}
		remaining := duration - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return Progress{State: Active, Elapsed: elapsed, Remaining: remaining}
	case Resolving:
		return Progress{State: Resolving, Elapsed: m.resolution.Elapsed()}
	default:
		return Progress{State: Idle}
	}
}

// Resolve moves an elapsed Active session to Resolving and returns the frozen resolution.
func (m *Machine) Resolve(now time.Time, cfg domain.EconomyConfig) (Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Idle:
		return Resolution{}, ErrNoActiveSession
	case Resolving:
		return Resolution{}, ErrSessionResolving
	}
	if now.Sub(m.startTime) < cfg.SessionDuration {
		return Resolution{}, ErrSessionIncomplete
	}

	res := Resolution{
		StartTime:  m.startTime,
		ResolvedAt: now,
		Duration:   cfg.SessionDuration,
		Rate:       cfg.AccrualRate,
	}
	m.state = Resolving
	m.resolution = &res
	return res, nil
}

// Complete returns a Resolving session to Idle once its reward is confirmed.
func (m *Machine) Complete(reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Resolving {
		return ErrNoActiveSession
	}
	if reason != m.resolution.Reason() {
		return ErrReasonMismatch
	}
	m.state = Idle
	m.startTime = time.Time{}
	m.resolution = nil
	return nil
}

// Restore rebuilds the machine from a persisted session and, if present, an unconfirmed resolution
func (m *Machine) Restore(s domain.Session, res *Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case res != nil:
		r := *res
		m.state = Resolving
		m.startTime = r.StartTime
		m.resolution = &r
	case s.Active && s.StartTime != nil:
		m.state = Active
		m.startTime = *s.StartTime
		m.resolution = nil
	default:
		m.state = Idle
		m.startTime = time.Time{}
		m.resolution = nil
	}
}

// Snapshot returns the persisted view of the session
func (m *Machine) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Idle {
		return domain.Session{}
	}
	st := m.startTime
	return domain.Session{Active: true, StartTime: &st}
}

// Pending returns the unconfirmed resolution, if any
func (m *Machine) Pending() (Resolution, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Resolving {
		return Resolution{}, false
	}
	return *m.resolution, true
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
