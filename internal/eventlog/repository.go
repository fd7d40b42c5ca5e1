package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one persisted bus event
type Entry struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	SubjectID *string         `json:"subject_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filter narrows GetEvents. Zero fields match everything.
type Filter struct {
	SubjectID string
	EventType string
	Since     time.Time
	Limit     int
}

// Repository stores the event log
type Repository interface {
	LogEvent(ctx context.Context, eventType string, subjectID *string, payload, metadata []byte) error

	// GetEvents returns matching entries, newest first
	GetEvents(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents deletes entries created before cutoff and returns how many went
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
