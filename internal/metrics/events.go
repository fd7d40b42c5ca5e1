package metrics

import (
	"context"

	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/logger"
)

// EventMetricsCollector subscribes to reward outcome events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all outcome events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.OutcomeApplied,
		event.OutcomeAlreadyApplied,
		event.OutcomeParked,
		event.OutcomeRejected,
		event.BalanceSynced,
		event.WithdrawalRequested,
		event.ConfigChanged,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates counters for a published event
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.OutcomeApplied, event.OutcomeAlreadyApplied, event.OutcomeParked, event.OutcomeRejected:
		payload, err := event.DecodePayload[event.RewardOutcomePayloadV1](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		RewardSubmissions.WithLabelValues(payload.RewardKind, string(evt.Type)).Inc()
	}
	return nil
}
