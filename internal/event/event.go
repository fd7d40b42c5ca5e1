package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Outcome event types observable by the presentation layer
const (
	OutcomeApplied        Type = domain.EventTypeRewardApplied
	OutcomeAlreadyApplied Type = domain.EventTypeRewardAlreadyApplied
	OutcomeParked         Type = domain.EventTypeRewardParked
	OutcomeRejected       Type = domain.EventTypeRewardRejected
	BalanceSynced         Type = domain.EventTypeBalanceSynced
	WithdrawalRequested   Type = domain.EventTypeWithdrawalRequested
	ConfigChanged         Type = domain.EventTypeConfigChanged
)

// RewardOutcomePayloadV1 describes what happened to a submitted reward.
// Cause carries a machine-readable rejection or failure cause, never a raw transport error.
type RewardOutcomePayloadV1 struct {
	SubjectID  string          `json:"subject_id"`
	RewardKind string          `json:"reward_kind"`
	Reason     string          `json:"reason"`
	Amount     decimal.Decimal `json:"amount"`
	Attempts   int             `json:"attempts"`
	Cause      string          `json:"cause,omitempty"`
	Timestamp  int64           `json:"timestamp"`
}

// BalanceSyncedPayloadV1 carries the authoritative balance after a fetch
type BalanceSyncedPayloadV1 struct {
	SubjectID string          `json:"subject_id"`
	Balance   decimal.Decimal `json:"balance"`
	Referrals int             `json:"referrals"`
	Timestamp int64           `json:"timestamp"`
}

// WithdrawalRequestedPayloadV1 is published when a withdrawal is accepted
type WithdrawalRequestedPayloadV1 struct {
	RequestID string          `json:"request_id"`
	SubjectID string          `json:"subject_id"`
	Amount    decimal.Decimal `json:"amount"`
	Address   string          `json:"address"`
	Timestamp int64           `json:"timestamp"`
}

// ConfigChangedPayloadV1 carries the config echoed back after a privileged mutation
type ConfigChangedPayloadV1 struct {
	Config domain.EconomyConfig `json:"config"`
}

// Type-safe event constructors

// NewRewardOutcomeEvent creates a reward outcome event of the given type
func NewRewardOutcomeEvent(outcome Type, ev domain.RewardEvent, attempts int, cause string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    outcome,
		Payload: RewardOutcomePayloadV1{
			SubjectID:  ev.SubjectID,
			RewardKind: ev.Kind(),
			Reason:     ev.Reason,
			Amount:     ev.Amount,
			Attempts:   attempts,
			Cause:      cause,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"reason": ev.Reason,
		},
	}
}

// NewBalanceSyncedEvent creates a balance synced event
func NewBalanceSyncedEvent(acct domain.Account) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BalanceSynced,
		Payload: BalanceSyncedPayloadV1{
			SubjectID: acct.SubjectID,
			Balance:   acct.Balance,
			Referrals: len(acct.Referrals),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewWithdrawalRequestedEvent creates a withdrawal requested event
func NewWithdrawalRequestedEvent(req domain.WithdrawalRequest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WithdrawalRequested,
		Payload: WithdrawalRequestedPayloadV1{
			RequestID: req.RequestID,
			SubjectID: req.SubjectID,
			Amount:    req.Amount,
			Address:   req.Address,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"request_id": req.RequestID,
		},
	}
}

// NewConfigChangedEvent creates a config changed event
func NewConfigChangedEvent(cfg domain.EconomyConfig) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConfigChanged,
		Payload: ConfigChangedPayloadV1{Config: cfg},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
