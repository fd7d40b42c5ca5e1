// Package tasks enforces the verification window of one-shot tasks.
package tasks

import (
	"errors"
	"sync"
	"time"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// Gate errors
var (
	ErrVerificationPending = errors.New("task verification window has not elapsed")
	ErrNotStarted          = errors.New("task has not been started")
	ErrAlreadyCompleted    = domain.ErrTaskAlreadyCompleted
)

// Gate tracks when each task was begun. Claims are allowed once the task's
// timer has fully elapsed; a task without a timer is claimable immediately.
type Gate struct {
	mu       sync.Mutex
	begun    map[string]window
	complete map[string]bool
}

type window struct {
	start time.Time
	timer time.Duration
}

// NewGate creates an empty gate
func NewGate() *Gate {
	return &Gate{
		begun:    make(map[string]window),
		complete: make(map[string]bool),
	}
}

// Seed marks tasks that are already completed so they can never be begun or claimed again
func (g *Gate) Seed(tasks []domain.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range tasks {
		if t.Completed {
			g.complete[t.ID] = true
		}
	}
}

// Begin opens the verification window for task at now.
// Beginning an already-begun task restarts nothing.
func (g *Gate) Begin(task domain.Task, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if task.Completed || g.complete[task.ID] {
		return ErrAlreadyCompleted
	}
	if _, ok := g.begun[task.ID]; ok {
		return nil
	}
	g.begun[task.ID] = window{start: now, timer: task.Timer}
	return nil
}

// Remaining returns how long until the task can be claimed
func (g *Gate) Remaining(id string, now time.Time) (time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remaining(id, now)
}

// CanClaim reports whether the task is claimable at now
func (g *Gate) CanClaim(id string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	rem, err := g.remaining(id, now)
	return err == nil && rem == 0
}

// Claim marks the task completed if its window has elapsed.
// Exactly one Claim per task succeeds.
func (g *Gate) Claim(id string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rem, err := g.remaining(id, now)
	if err != nil {
		return err
	}
	if rem > 0 {
		return ErrVerificationPending
	}
	g.complete[id] = true
	delete(g.begun, id)
	return nil
}

func (g *Gate) remaining(id string, now time.Time) (time.Duration, error) {
	if g.complete[id] {
		return 0, ErrAlreadyCompleted
	}
	w, ok := g.begun[id]
	if !ok {
		return 0, ErrNotStarted
	}
	rem := w.timer - now.Sub(w.start)
	if rem < 0 {
		rem = 0
	}
	return rem, nil
}
