package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GlowMine_Go/internal/eventlog"
)

// EventLogRepository implements eventlog.Repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, subjectID *string, payload, metadata []byte) error {
	if _, err := r.db.Exec(ctx, queryInsertEvent, eventType, subjectID, payload, metadata); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// GetEvents builds the WHERE clause from the non-zero filter fields
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	var qb strings.Builder
	qb.WriteString(querySelectEvents)
	qb.WriteString(" WHERE 1=1")

	args := []any{}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		fmt.Fprintf(&qb, " AND subject_id = $%d", len(args))
	}
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		fmt.Fprintf(&qb, " AND event_type = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		fmt.Fprintf(&qb, " AND created_at >= $%d", len(args))
	}
	qb.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&qb, " LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (eventlog.Entry, error) {
		var e eventlog.Entry
		err := row.Scan(&e.ID, &e.EventType, &e.SubjectID, &e.Payload, &e.Metadata, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	return entries, nil
}

func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, queryDeleteEventsBefore, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
