// Package snapshot persists the client's local mirror and parked reward events in SQLite.
//
// The mirror is never authoritative: it is overwritten after every successful
// fetch from the ledger and only used to resume after a restart.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/session"
)

// ErrNotFound is returned when a key has never been written
var ErrNotFound = errors.New("snapshot not found")

// migrations are applied in order on every Open
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		`CREATE TABLE IF NOT EXISTS pending_events (
			subject_id TEXT NOT NULL,
			reason     TEXT NOT NULL,
			amount     TEXT NOT NULL,
			attempts   INTEGER NOT NULL DEFAULT 0,
			last_error TEXT NOT NULL DEFAULT '',
			parked_at  TEXT NOT NULL,
			PRIMARY KEY (subject_id, reason)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pending_parked ON pending_events(parked_at)`,
	}
}

// Store is a SQLite-backed snapshot and pending-event store
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db: %w", err)
	}
	// single connection: writers are serialised
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	for _, stmt := range migrations() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate snapshot db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveUser overwrites the persisted user mirror
func (s *Store) SaveUser(ctx context.Context, u domain.User) error {
	return s.put(ctx, domain.SnapshotKeyUser, u)
}

// LoadUser returns the persisted user mirror or ErrNotFound
func (s *Store) LoadUser(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := s.get(ctx, domain.SnapshotKeyUser, &u)
	return u, err
}

// SaveConfig overwrites the last-known-good economy config
func (s *Store) SaveConfig(ctx context.Context, cfg domain.EconomyConfig) error {
	return s.put(ctx, domain.SnapshotKeyConfig, cfg)
}

// LoadConfig returns the last-known-good economy config or ErrNotFound
func (s *Store) LoadConfig(ctx context.Context) (domain.EconomyConfig, error) {
	var cfg domain.EconomyConfig
	err := s.get(ctx, domain.SnapshotKeyConfig, &cfg)
	return cfg, err
}

// SaveResolution records the unconfirmed resolution; nil clears it
func (s *Store) SaveResolution(ctx context.Context, res *session.Resolution) error {
	if res == nil {
		_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, keyResolution)
		if err != nil {
			return fmt.Errorf("failed to clear resolution: %w", err)
		}
		return nil
	}
	return s.put(ctx, keyResolution, res)
}

// LoadResolution returns the unconfirmed resolution, or nil when there is none
func (s *Store) LoadResolution(ctx context.Context) (*session.Resolution, error) {
	var res session.Resolution
	err := s.get(ctx, keyResolution, &res)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SaveWithdrawal journals an unacknowledged withdrawal; nil clears it
func (s *Store) SaveWithdrawal(ctx context.Context, req *domain.WithdrawalRequest) error {
	if req == nil {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, keyWithdrawal); err != nil {
			return fmt.Errorf("failed to clear withdrawal: %w", err)
		}
		return nil
	}
	return s.put(ctx, keyWithdrawal, req)
}

// LoadWithdrawal returns the journaled withdrawal, or nil when there is none
func (s *Store) LoadWithdrawal(ctx context.Context) (*domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest
	err := s.get(ctx, keyWithdrawal, &req)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Park upserts a pending event. Re-parking the same reason keeps the original amount.
func (s *Store) Park(ctx context.Context, p domain.PendingEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pending_events (subject_id, reason, amount, attempts, last_error, parked_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject_id, reason) DO UPDATE SET
			attempts   = pending_events.attempts + excluded.attempts,
			last_error = excluded.last_error,
			parked_at  = excluded.parked_at
	`, p.Event.SubjectID, p.Event.Reason, p.Event.Amount.String(), p.Attempts, p.LastError,
		p.ParkedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to park %s: %w", p.Event.Key(), err)
	}
	return nil
}

// ListPending returns every parked event, oldest first
func (s *Store) ListPending(ctx context.Context) ([]domain.PendingEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject_id, reason, amount, attempts, last_error, parked_at
		FROM pending_events
		ORDER BY parked_at, reason
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	defer rows.Close()

	var out []domain.PendingEvent
	for rows.Next() {
		var p domain.PendingEvent
		var amount, parkedAt string
		if err := rows.Scan(&p.Event.SubjectID, &p.Event.Reason, &amount, &p.Attempts, &p.LastError, &parkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending event: %w", err)
		}
		if p.Event.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt amount for %s: %w", p.Event.Key(), err)
		}
		if p.ParkedAt, err = time.Parse(time.RFC3339Nano, parkedAt); err != nil {
			return nil, fmt.Errorf("corrupt parked_at for %s: %w", p.Event.Key(), err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Resolve removes a pending event once the ledger has confirmed it
func (s *Store) Resolve(ctx context.Context, subjectID, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_events WHERE subject_id = ? AND reason = ?`, subjectID, reason)
	if err != nil {
		return fmt.Errorf("failed to resolve %s/%s: %w", subjectID, reason, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string, dst interface{}) error {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
