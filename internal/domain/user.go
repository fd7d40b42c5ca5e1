package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TaskKind classifies a one-shot task
type TaskKind string

// ParseTaskKind normalises a task kind, mapping the legacy "telegram" kind to social
func ParseTaskKind(s string) (TaskKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TaskKindVideo):
		return TaskKindVideo, nil
	case string(TaskKindLink):
		return TaskKindLink, nil
	case string(TaskKindSocial), legacyTaskKindTelegram:
		return TaskKindSocial, nil
	default:
		return "", ErrInvalidTaskKind
	}
}

// Task is a one-shot reward. Completed is terminal.
type Task struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Reward    decimal.Decimal `json:"reward"`
	Kind      TaskKind        `json:"kind"`
	Completed bool            `json:"is_completed"`
	Timer     time.Duration   `json:"timer,omitempty"`
	Link      string          `json:"link,omitempty"`
}

// Referral is a credit earned by inviting another subject.
// Entries are written only by the backend.
type Referral struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Earned   decimal.Decimal `json:"earned"`
	Date     time.Time       `json:"date"`
}

// Session is the persisted view of a mining session.
// StartTime is set if and only if the session is active or resolving.
type Session struct {
	Active    bool       `json:"is_active"`
	StartTime *time.Time `json:"start_time"`
}

// User is the client-side account view owned by the reconciliation layer
type User struct {
	SubjectID   string          `json:"subject_id"`
	DisplayName string          `json:"display_name"`
	Balance     decimal.Decimal `json:"balance"`
	Tasks       []Task          `json:"tasks"`
	Referrals   []Referral      `json:"referrals"`
	Session     Session         `json:"session"`
}

// Clone returns a deep copy safe to hand to readers
func (u User) Clone() User {
	out := u
	out.Tasks = append([]Task(nil), u.Tasks...)
	out.Referrals = append([]Referral(nil), u.Referrals...)
	if u.Session.StartTime != nil {
		st := *u.Session.StartTime
		out.Session.StartTime = &st
	}
	return out
}

// FindTask returns the index of the task with the given id, or -1
func (u *User) FindTask(id string) int {
	for i := range u.Tasks {
		if u.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Account is the authoritative balance view returned by the ledger
type Account struct {
	SubjectID string          `json:"subject_id"`
	Balance   decimal.Decimal `json:"balance"`
	Referrals []Referral      `json:"referrals"`
}

// DefaultTasks returns the built-in task catalogue
func DefaultTasks() []Task {
	return []Task{
		{ID: "v1", Title: "Watch Crypto News Ad", Reward: decimal.NewFromInt(500), Kind: TaskKindVideo, Timer: 20 * time.Second, Link: "AD_CODE_123"},
		{ID: "t1", Title: "Join GlowMine Official", Reward: decimal.NewFromInt(1000), Kind: TaskKindSocial, Link: "https://t.me/GlowMine"},
		{ID: "l1", Title: "Visit Partner Site", Reward: decimal.NewFromInt(300), Kind: TaskKindLink, Timer: 20 * time.Second, Link: "https://google.com"},
	}
}
