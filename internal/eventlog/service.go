// Package eventlog keeps an audit trail of the ledger's bus events.
package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// Service records bus events and prunes old ones
type Service interface {
	// Subscribe logs LoggedTypes; the database write runs on d
	Subscribe(bus event.Bus, d worker.Dispatcher)
	Events(ctx context.Context, filter Filter) ([]Entry, error)
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// LoggedTypes are the events the ledger writes to the audit trail
var LoggedTypes = []event.Type{
	event.WithdrawalRequested,
	event.ConfigChanged,
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event log service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus, d worker.Dispatcher) {
	handler := func(ctx context.Context, evt event.Event) error {
		payload, err := json.Marshal(evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgFailedToMarshal, "type", evt.Type, "error", err)
			return nil
		}
		var metadata []byte
		if len(evt.Metadata) > 0 {
			if metadata, err = json.Marshal(evt.Metadata); err != nil {
				metadata = nil
			}
		}
		requestID := logger.GetRequestID(ctx)
		eventType, subjectID := string(evt.Type), subjectOf(evt)

		job := worker.JobFunc(func(jobCtx context.Context) error {
			jobCtx = logger.WithRequestID(jobCtx, requestID)
			if err := s.repo.LogEvent(jobCtx, eventType, subjectID, payload, metadata); err != nil {
				logger.FromContext(jobCtx).Error(LogMsgFailedToLogEvent, "error", err, "type", eventType)
				return err
			}
			logger.FromContext(jobCtx).Debug(LogMsgEventLogged, "type", eventType)
			return nil
		})
		if err := d.Enqueue(job); err != nil {
			logger.FromContext(ctx).Warn(LogMsgEventDropped, "type", eventType, "error", err)
		}
		return nil
	}
	for _, t := range LoggedTypes {
		bus.Subscribe(t, handler)
	}
}

// subjectOf returns the subject an event concerns, if any
func subjectOf(evt event.Event) *string {
	var id string
	switch p := evt.Payload.(type) {
	case event.WithdrawalRequestedPayloadV1:
		id = p.SubjectID
	case event.RewardOutcomePayloadV1:
		id = p.SubjectID
	case event.BalanceSyncedPayloadV1:
		id = p.SubjectID
	}
	if id == "" {
		return nil
	}
	return &id
}

func (s *service) Events(ctx context.Context, filter Filter) ([]Entry, error) {
	if filter.Limit <= 0 || filter.Limit > DefaultListLimit {
		filter.Limit = DefaultListLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
