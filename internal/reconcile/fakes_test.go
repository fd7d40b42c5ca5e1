package reconcile

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/ledgerclient"
)

// fakeLedger is an in-memory ledger that deduplicates credits per (subject, reason)
type fakeLedger struct {
	mu sync.Mutex

	balances  map[string]decimal.Decimal
	applied   map[string]bool
	referrals []domain.Referral
	receipts  map[string]domain.WithdrawalReceipt

	down        bool
	failCredits int
	reject      *ledgerclient.RejectionError
	creditDelay time.Duration

	// lostWithdrawResponses commits that many withdrawals but answers with a transport error
	lostWithdrawResponses int
	onBalance             func()
	withdrawIDs           []string

	creditCalls   int
	appliedCount  int
	withdrawCalls int
	calls         []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: make(map[string]decimal.Decimal),
		applied:  make(map[string]bool),
		receipts: make(map[string]domain.WithdrawalReceipt),
	}
}

func transient() error {
	return fmt.Errorf("%w: connection refused", ledgerclient.ErrTransient)
}

func (f *fakeLedger) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeLedger) balance(subjectID string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[subjectID]
}

func (f *fakeLedger) stats() (creditCalls, applied, withdrawCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creditCalls, f.appliedCount, f.withdrawCalls
}

func (f *fakeLedger) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeLedger) Register(ctx context.Context, subjectID, displayName, referrerID string) (domain.Account, error) {
	return f.Balance(ctx, subjectID)
}

func (f *fakeLedger) Balance(ctx context.Context, subjectID string) (domain.Account, error) {
	if f.onBalance != nil {
		f.onBalance()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "balance")
	if f.down {
		return domain.Account{}, transient()
	}
	return domain.Account{
		SubjectID: subjectID,
		Balance:   f.balances[subjectID],
		Referrals: append([]domain.Referral(nil), f.referrals...),
	}, nil
}

func (f *fakeLedger) Credit(ctx context.Context, ev domain.RewardEvent) (domain.CreditResult, error) {
	if ctx.Err() != nil {
		return domain.CreditResult{}, transient()
	}
	f.mu.Lock()
	delay := f.creditDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.creditCalls++
	f.calls = append(f.calls, "credit:"+ev.Reason)

	if f.down {
		return domain.CreditResult{}, transient()
	}
	if f.failCredits > 0 {
		f.failCredits--
		return domain.CreditResult{}, transient()
	}
	if f.reject != nil {
		return domain.CreditResult{}, f.reject
	}
	if f.applied[ev.Key()] {
		return domain.CreditResult{Duplicate: true, Balance: f.balances[ev.SubjectID]}, ledgerclient.ErrDuplicate
	}
	f.applied[ev.Key()] = true
	f.appliedCount++
	f.balances[ev.SubjectID] = f.balances[ev.SubjectID].Add(ev.Amount)
	return domain.CreditResult{Applied: true, Balance: f.balances[ev.SubjectID]}, nil
}

func (f *fakeLedger) Withdraw(ctx context.Context, req domain.WithdrawalRequest) (domain.WithdrawalReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.withdrawCalls++
	f.withdrawIDs = append(f.withdrawIDs, req.RequestID)
	if f.down {
		return domain.WithdrawalReceipt{}, transient()
	}
	if r, ok := f.receipts[req.RequestID]; ok {
		return r, f.loseWithdrawResponse()
	}
	if req.Amount.GreaterThan(f.balances[req.SubjectID]) {
		return domain.WithdrawalReceipt{}, &ledgerclient.RejectionError{
			Status: http.StatusUnprocessableEntity,
			Code:   domain.WithdrawRejectInsufficientBalance,
		}
	}
	f.balances[req.SubjectID] = f.balances[req.SubjectID].Sub(req.Amount)
	r := domain.WithdrawalReceipt{
		RequestID: req.RequestID,
		Accepted:  true,
		Balance:   f.balances[req.SubjectID],
		CreatedAt: time.Now(),
	}
	f.receipts[req.RequestID] = r
	return r, f.loseWithdrawResponse()
}

func (f *fakeLedger) loseWithdrawResponse() error {
	if f.lostWithdrawResponses == 0 {
		return nil
	}
	f.lostWithdrawResponses--
	return transient()
}

func (f *fakeLedger) withdrawRequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.withdrawIDs...)
}

func (f *fakeLedger) GetConfig(ctx context.Context) (domain.EconomyConfigUpdate, error) {
	return testConfig().ToUpdate(), nil
}

func (f *fakeLedger) PutConfig(ctx context.Context, adminKey string, cfg domain.EconomyConfig) (domain.EconomyConfigUpdate, error) {
	return cfg.ToUpdate(), nil
}

// memPending is an in-memory PendingStore with the same upsert rules as the SQLite one
type memPending struct {
	mu    sync.Mutex
	items map[string]domain.PendingEvent
}

func newMemPending() *memPending {
	return &memPending{items: make(map[string]domain.PendingEvent)}
}

func (m *memPending) Park(ctx context.Context, p domain.PendingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.items[p.Event.Key()]; ok {
		prev.Attempts += p.Attempts
		prev.LastError = p.LastError
		prev.ParkedAt = p.ParkedAt
		m.items[p.Event.Key()] = prev
		return nil
	}
	m.items[p.Event.Key()] = p
	return nil
}

func (m *memPending) ListPending(ctx context.Context) ([]domain.PendingEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PendingEvent, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPending) Resolve(ctx context.Context, subjectID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, subjectID+"/"+reason)
	return nil
}

// outcomeRecorder captures published event types in order
type outcomeRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *outcomeRecorder) register(bus event.Bus) {
	for _, t := range []event.Type{
		event.OutcomeApplied,
		event.OutcomeAlreadyApplied,
		event.OutcomeParked,
		event.OutcomeRejected,
		event.BalanceSynced,
		event.WithdrawalRequested,
	} {
		bus.Subscribe(t, func(ctx context.Context, e event.Event) error {
			r.mu.Lock()
			r.events = append(r.events, e)
			r.mu.Unlock()
			return nil
		})
	}
}

func (r *outcomeRecorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *outcomeRecorder) last(t event.Type) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return event.Event{}, false
}
