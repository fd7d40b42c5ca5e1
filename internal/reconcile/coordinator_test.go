package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GlowMine_Go/internal/configstore"
	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/ledgerclient"
	"github.com/osse101/GlowMine_Go/internal/session"
	"github.com/osse101/GlowMine_Go/internal/tasks"
	"github.com/osse101/GlowMine_Go/internal/testing/leaktest"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

const testSubject = "42"

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() domain.EconomyConfig {
	return domain.EconomyConfig{
		AccrualRate:     decimal.NewFromInt(10),
		SessionDuration: 60 * time.Second,
		ReferralReward:  decimal.NewFromInt(500),
		MinWithdraw:     decimal.NewFromInt(10000),
		ExchangeRate:    decimal.NewFromInt(1000),
	}
}

type harness struct {
	c       *Coordinator
	ledger  *fakeLedger
	pending *memPending
	store   *configstore.Store
	events  *outcomeRecorder
}

func newHarness(t *testing.T, dispatcher worker.Dispatcher) *harness {
	t.Helper()
	ledger := newFakeLedger()
	pending := newMemPending()
	store := configstore.New(ledger, testConfig())
	bus := event.NewMemoryBus()
	rec := &outcomeRecorder{}
	rec.register(bus)

	user := domain.User{SubjectID: testSubject, DisplayName: "miner", Tasks: domain.DefaultTasks()}
	c, err := New(user, nil, Options{
		Client:     ledger,
		Config:     store,
		Pending:    pending,
		Bus:        bus,
		Dispatcher: dispatcher,
		Retry:      RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond},
		Sleep:      func(context.Context, time.Duration) error { return nil },
	})
	require.NoError(t, err)
	return &harness{c: c, ledger: ledger, pending: pending, store: store, events: rec}
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(domain.User{SubjectID: "1"}, nil, Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ledger := newFakeLedger()
	_, err = New(domain.User{}, nil, Options{
		Client:  ledger,
		Config:  configstore.New(ledger, testConfig()),
		Pending: newMemPending(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCoordinator_MiningSessionCreditsOnce(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	require.NoError(t, h.c.StartSession(ctx, t0))

	p := h.c.Poll(ctx, t0.Add(30*time.Second))
	assert.Equal(t, session.Active, p.State)
	assert.Equal(t, 30*time.Second, p.Remaining)

	p = h.c.Poll(ctx, t0.Add(60*time.Second))
	assert.Equal(t, session.Idle, p.State)

	assert.True(t, decimal.NewFromInt(600).Equal(h.ledger.balance(testSubject)))
	assert.True(t, decimal.NewFromInt(600).Equal(h.c.User().Balance))
	assert.False(t, h.c.User().Session.Active)

	// late polls never emit a second event
	h.c.Poll(ctx, t0.Add(2*time.Hour))
	calls, applied, _ := h.ledger.stats()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, applied)
}

func TestCoordinator_FetchFollowsSubmitAck(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	require.NoError(t, h.c.StartSession(ctx, t0))
	h.c.Poll(ctx, t0.Add(time.Minute))

	reason := domain.MiningReason(t0)
	assert.Equal(t, []string{"credit:" + reason, "balance"}, h.ledger.callLog())
	assert.Equal(t, []event.Type{event.OutcomeApplied, event.BalanceSynced}, h.events.types())
}

func TestCoordinator_StartRejectedWhileActiveOrResolving(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	require.NoError(t, h.c.StartSession(ctx, t0))
	assert.ErrorIs(t, h.c.StartSession(ctx, t0.Add(time.Second)), session.ErrSessionActive)
}

func TestCoordinator_ParksAfterRetryCeiling(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	require.NoError(t, h.c.StartSession(ctx, t0))
	h.ledger.setDown(true)
	p := h.c.Poll(ctx, t0.Add(time.Minute))
	assert.Equal(t, session.Resolving, p.State)

	pending, err := h.c.PendingEvents(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.MiningReason(t0), pending[0].Event.Reason)
	assert.True(t, decimal.NewFromInt(600).Equal(pending[0].Event.Amount))
	assert.Equal(t, 4, pending[0].Attempts, "initial attempt plus three retries")

	parked, ok := h.events.last(event.OutcomeParked)
	require.True(t, ok)
	payload := parked.Payload.(event.RewardOutcomePayloadV1)
	assert.Equal(t, CauseLedgerUnavailable, payload.Cause)

	// balance never moves optimistically
	assert.True(t, h.c.User().Balance.IsZero())
}

func TestCoordinator_StartFlushesParkedRewardFirst(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	require.NoError(t, h.c.StartSession(ctx, t0))
	h.ledger.setDown(true)
	h.c.Poll(ctx, t0.Add(time.Minute))

	err := h.c.StartSession(ctx, t0.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrResolutionPending)

	h.ledger.setDown(false)
	require.NoError(t, h.c.StartSession(ctx, t0.Add(3*time.Minute)))

	pending, err := h.c.PendingEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.True(t, decimal.NewFromInt(600).Equal(h.c.User().Balance))
	assert.Equal(t, session.Active, h.c.Progress(t0.Add(3*time.Minute)).State)
}

func TestCoordinator_TransientThenSuccess(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	h.ledger.failCredits = 2

	ev := domain.RewardEvent{SubjectID: testSubject, Amount: decimal.NewFromInt(5), Reason: "task:x"}
	res, err := h.c.Submit(context.Background(), ev)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	calls, applied, _ := h.ledger.stats()
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, applied)

	applied1, ok := h.events.last(event.OutcomeApplied)
	require.True(t, ok)
	assert.Equal(t, 3, applied1.Payload.(event.RewardOutcomePayloadV1).Attempts)
}

func TestCoordinator_DuplicateIsSuccess(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ev := domain.RewardEvent{SubjectID: testSubject, Amount: decimal.NewFromInt(5), Reason: "task:x"}

	_, err := h.c.Submit(context.Background(), ev)
	require.NoError(t, err)
	_, err = h.c.Submit(context.Background(), ev)
	require.NoError(t, err)

	_, applied, _ := h.ledger.stats()
	assert.Equal(t, 1, applied)
	assert.True(t, decimal.NewFromInt(5).Equal(h.c.User().Balance))
	assert.Contains(t, h.events.types(), event.OutcomeAlreadyApplied)
}

func TestCoordinator_RejectionIsNotRetried(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	h.ledger.reject = &ledgerclient.RejectionError{Status: 400, Code: ledgerclient.CodeInvalidRequest}

	ev := domain.RewardEvent{SubjectID: testSubject, Amount: decimal.NewFromInt(5), Reason: "task:x"}
	_, err := h.c.Submit(context.Background(), ev)

	rej, ok := ledgerclient.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ledgerclient.CodeInvalidRequest, rej.Code)

	calls, _, _ := h.ledger.stats()
	assert.Equal(t, 1, calls)

	pending, _ := h.c.PendingEvents(context.Background())
	assert.Empty(t, pending)

	rejected, ok := h.events.last(event.OutcomeRejected)
	require.True(t, ok)
	assert.Equal(t, ledgerclient.CodeInvalidRequest, rejected.Payload.(event.RewardOutcomePayloadV1).Cause)
}

func TestCoordinator_SubmitSurvivesCallerCancellation(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := domain.RewardEvent{SubjectID: testSubject, Amount: decimal.NewFromInt(5), Reason: "task:x"}
	_, err := h.c.Submit(ctx, ev)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(h.ledger.balance(testSubject)))
}

func TestCoordinator_ConcurrentRetriesCreditOnce(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.creditDelay = 5 * time.Millisecond

	ev := domain.RewardEvent{SubjectID: testSubject, Amount: decimal.NewFromInt(180), Reason: domain.MiningReason(t0)}
	require.NoError(t, h.pending.Park(ctx, domain.PendingEvent{Event: ev, Attempts: 4, ParkedAt: t0}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = h.c.RetryPending(ctx)
		}()
	}
	wg.Wait()

	_, applied, _ := h.ledger.stats()
	assert.Equal(t, 1, applied)
	assert.True(t, decimal.NewFromInt(180).Equal(h.ledger.balance(testSubject)))

	pending, err := h.c.PendingEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCoordinator_ResolutionSnapshotsConfig(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	require.NoError(t, h.c.StartSession(ctx, t0))

	rate := 20.0
	h.store.Merge(domain.EconomyConfigUpdate{AccrualRate: &rate})
	h.c.Poll(ctx, t0.Add(time.Minute))

	assert.True(t, decimal.NewFromInt(1200).Equal(h.ledger.balance(testSubject)))

	// a change after resolution does not alter the owed amount
	h2 := newHarness(t, worker.Inline{})
	require.NoError(t, h2.c.StartSession(ctx, t0))
	h2.ledger.setDown(true)
	h2.c.Poll(ctx, t0.Add(time.Minute))
	h2.store.Merge(domain.EconomyConfigUpdate{AccrualRate: &rate})
	h2.ledger.setDown(false)

	_, err := h2.c.RetryPending(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(h2.ledger.balance(testSubject)))
}

func TestCoordinator_ClaimTask(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	assert.ErrorIs(t, h.c.ClaimTask(ctx, "v1", t0), tasks.ErrNotStarted)

	remaining, err := h.c.BeginTask("v1", t0)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, remaining)

	assert.ErrorIs(t, h.c.ClaimTask(ctx, "v1", t0.Add(19*time.Second)), tasks.ErrVerificationPending)
	require.NoError(t, h.c.ClaimTask(ctx, "v1", t0.Add(20*time.Second)))
	assert.ErrorIs(t, h.c.ClaimTask(ctx, "v1", t0.Add(21*time.Second)), tasks.ErrAlreadyCompleted)

	calls, _, _ := h.ledger.stats()
	assert.Equal(t, 1, calls)
	assert.True(t, decimal.NewFromInt(500).Equal(h.c.User().Balance))

	u := h.c.User()
	assert.True(t, u.Tasks[u.FindTask("v1")].Completed)
}

func TestCoordinator_ClaimTaskWithoutTimer(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	_, err := h.c.BeginTask("t1", t0)
	require.NoError(t, err)
	require.NoError(t, h.c.ClaimTask(ctx, "t1", t0))
	assert.True(t, decimal.NewFromInt(1000).Equal(h.ledger.balance(testSubject)))
}

func TestCoordinator_ClaimUnknownTask(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	_, err := h.c.BeginTask("nope", t0)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, h.c.ClaimTask(context.Background(), "nope", t0), domain.ErrTaskNotFound)
}

func TestCoordinator_RejectedTaskStaysCompleted(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.reject = &ledgerclient.RejectionError{Status: 400, Code: ledgerclient.CodeInvalidRequest}

	_, err := h.c.BeginTask("t1", t0)
	require.NoError(t, err)
	require.NoError(t, h.c.ClaimTask(ctx, "t1", t0))

	u := h.c.User()
	assert.True(t, u.Tasks[u.FindTask("t1")].Completed)

	rejected, ok := h.events.last(event.OutcomeRejected)
	require.True(t, ok)
	assert.Equal(t, domain.TaskReason("t1"), rejected.Payload.(event.RewardOutcomePayloadV1).Reason)

	h.ledger.reject = nil
	_, err = h.c.BeginTask("t1", t0)
	assert.ErrorIs(t, err, tasks.ErrAlreadyCompleted)
	assert.ErrorIs(t, h.c.ClaimTask(ctx, "t1", t0), tasks.ErrAlreadyCompleted)

	calls, _, _ := h.ledger.stats()
	assert.Equal(t, 1, calls)
	assert.True(t, h.ledger.balance(testSubject).IsZero())
	pending, _ := h.c.PendingEvents(ctx)
	assert.Empty(t, pending)
}

func TestCoordinator_ReplaceTasksKeepsCompletion(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()

	_, err := h.c.BeginTask("t1", t0)
	require.NoError(t, err)
	require.NoError(t, h.c.ClaimTask(ctx, "t1", t0))

	h.c.ReplaceTasks(ctx, []domain.Task{
		{ID: "t1", Title: "Renamed", Reward: decimal.NewFromInt(1000), Kind: domain.TaskKindSocial},
		{ID: "n1", Title: "New", Reward: decimal.NewFromInt(10), Kind: domain.TaskKindLink},
	})

	u := h.c.User()
	require.Len(t, u.Tasks, 2)
	assert.True(t, u.Tasks[0].Completed)
	assert.Equal(t, "Renamed", u.Tasks[0].Title)
	assert.False(t, u.Tasks[1].Completed)
	assert.ErrorIs(t, h.c.ClaimTask(ctx, "t1", t0), tasks.ErrAlreadyCompleted)
}

func TestCoordinator_WithdrawalValidationNeverReachesLedger(t *testing.T) {
	h := newHarness(t, worker.Inline{})

	_, err := h.c.RequestWithdrawal(context.Background(), decimal.NewFromInt(15000), "short")

	var verr *withdrawal.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(withdrawal.ReasonInsufficientBalance))
	assert.True(t, verr.Has(withdrawal.ReasonMalformedAddress))

	_, _, withdrawCalls := h.ledger.stats()
	assert.Zero(t, withdrawCalls)
}

func TestCoordinator_WithdrawalAccepted(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.balances[testSubject] = decimal.NewFromInt(20000)
	_, err := h.c.FetchAuthoritative(ctx)
	require.NoError(t, err)

	receipt, err := h.c.RequestWithdrawal(ctx, decimal.NewFromInt(15000), "  0xABCDEF0123456789  ")
	require.NoError(t, err)
	assert.True(t, receipt.Accepted)
	assert.NotEmpty(t, receipt.RequestID)

	assert.True(t, decimal.NewFromInt(5000).Equal(h.c.User().Balance))
	assert.Contains(t, h.events.types(), event.WithdrawalRequested)
}

func TestCoordinator_WithdrawalTransientExhausted(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.balances[testSubject] = decimal.NewFromInt(20000)
	_, err := h.c.FetchAuthoritative(ctx)
	require.NoError(t, err)

	h.ledger.setDown(true)
	_, err = h.c.RequestWithdrawal(ctx, decimal.NewFromInt(15000), "0xABCDEF0123456789")
	assert.ErrorIs(t, err, ledgerclient.ErrTransient)

	_, _, withdrawCalls := h.ledger.stats()
	assert.Equal(t, 4, withdrawCalls)
	assert.True(t, decimal.NewFromInt(20000).Equal(h.c.User().Balance))

	journaled, err := h.c.PendingWithdrawal(ctx)
	require.NoError(t, err)
	require.NotNil(t, journaled)

	h.ledger.setDown(false)
	receipt, ok, err := h.c.RetryWithdrawal(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, journaled.RequestID, receipt.RequestID)
	for _, id := range h.ledger.withdrawRequestIDs() {
		assert.Equal(t, journaled.RequestID, id)
	}
	assert.True(t, decimal.NewFromInt(5000).Equal(h.c.User().Balance))

	journaled, err = h.c.PendingWithdrawal(ctx)
	require.NoError(t, err)
	assert.Nil(t, journaled)

	_, ok, err = h.c.RetryWithdrawal(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCoordinator_WithdrawalLostResponsesDebitOnce(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.balances[testSubject] = decimal.NewFromInt(20000)
	_, err := h.c.FetchAuthoritative(ctx)
	require.NoError(t, err)

	// the first attempt commits; every answer until the retry ceiling is lost
	h.ledger.lostWithdrawResponses = 4
	_, err = h.c.RequestWithdrawal(ctx, decimal.NewFromInt(15000), "0xABCDEF0123456789")
	assert.ErrorIs(t, err, ledgerclient.ErrTransient)
	assert.True(t, decimal.NewFromInt(5000).Equal(h.ledger.balance(testSubject)))

	// the balance sync a fresh command runs must not block the replay
	_, err = h.c.FetchAuthoritative(ctx)
	require.NoError(t, err)

	receipt, err := h.c.RequestWithdrawal(ctx, decimal.NewFromInt(15000), " 0xABCDEF0123456789 ")
	require.NoError(t, err)
	assert.True(t, receipt.Accepted)

	ids := h.ledger.withdrawRequestIDs()
	require.Len(t, ids, 5)
	for _, id := range ids {
		assert.Equal(t, receipt.RequestID, id)
	}
	assert.True(t, decimal.NewFromInt(5000).Equal(h.ledger.balance(testSubject)))
	assert.True(t, decimal.NewFromInt(5000).Equal(h.c.User().Balance))
}

func TestCoordinator_NewWithdrawalWaitsForUnacknowledged(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.balances[testSubject] = decimal.NewFromInt(40000)
	_, err := h.c.FetchAuthoritative(ctx)
	require.NoError(t, err)

	h.ledger.setDown(true)
	_, err = h.c.RequestWithdrawal(ctx, decimal.NewFromInt(15000), "0xABCDEF0123456789")
	require.ErrorIs(t, err, ledgerclient.ErrTransient)
	first, err := h.c.PendingWithdrawal(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = h.c.RequestWithdrawal(ctx, decimal.NewFromInt(12000), "0xABCDEF0123456789")
	assert.ErrorIs(t, err, ErrWithdrawalPending)
	for _, id := range h.ledger.withdrawRequestIDs() {
		assert.Equal(t, first.RequestID, id)
	}

	// once the ledger is back the earlier request settles first
	h.ledger.setDown(false)
	receipt, err := h.c.RequestWithdrawal(ctx, decimal.NewFromInt(12000), "0xABCDEF0123456789")
	require.NoError(t, err)
	assert.NotEqual(t, first.RequestID, receipt.RequestID)
	assert.True(t, decimal.NewFromInt(13000).Equal(h.ledger.balance(testSubject)))
}

func TestCoordinator_WithdrawalRejectionClearsJournal(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	h.ledger.balances[testSubject] = decimal.NewFromInt(20000)
	_, err := h.c.FetchAuthoritative(ctx)
	require.NoError(t, err)

	// the ledger knows of a debit the local mirror has not seen yet
	h.ledger.balances[testSubject] = decimal.NewFromInt(100)
	_, err = h.c.RequestWithdrawal(ctx, decimal.NewFromInt(15000), "0xABCDEF0123456789")
	rej, ok := ledgerclient.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.WithdrawRejectInsufficientBalance, rej.Code)

	journaled, err := h.c.PendingWithdrawal(ctx)
	require.NoError(t, err)
	assert.Nil(t, journaled)
}

func TestCoordinator_SessionResolvingUntilBalanceMerged(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	require.NoError(t, h.c.StartSession(ctx, t0))

	var states []session.State
	h.ledger.onBalance = func() { states = append(states, h.c.machine.State()) }

	p := h.c.Poll(ctx, t0.Add(time.Minute))

	assert.Equal(t, []session.State{session.Resolving}, states)
	assert.Equal(t, session.Idle, p.State)
	assert.True(t, decimal.NewFromInt(600).Equal(h.c.User().Balance))
}

func TestCoordinator_SessionSettlesWhenBalanceFetchFails(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	ctx := context.Background()
	require.NoError(t, h.c.StartSession(ctx, t0))

	h.ledger.onBalance = func() { h.ledger.setDown(true) }
	p := h.c.Poll(ctx, t0.Add(time.Minute))

	assert.Equal(t, session.Idle, p.State)
	assert.True(t, decimal.NewFromInt(600).Equal(h.ledger.balance(testSubject)))
	assert.True(t, h.c.User().Balance.IsZero())
}

func TestCoordinator_FetchReplacesReferrals(t *testing.T) {
	h := newHarness(t, worker.Inline{})
	h.ledger.referrals = []domain.Referral{
		{ID: "7", Username: "old", Earned: decimal.NewFromInt(500), Date: t0},
		{ID: "8", Username: "new", Earned: decimal.NewFromInt(500), Date: t0.Add(time.Hour)},
	}
	h.ledger.balances[testSubject] = decimal.NewFromInt(1000)

	acct, err := h.c.FetchAuthoritative(context.Background())
	require.NoError(t, err)
	assert.Len(t, acct.Referrals, 2)
	assert.Equal(t, 2, h.c.Referrals().Count())
	assert.Equal(t, "new", h.c.Referrals().Entries()[0].Username)
	assert.True(t, decimal.NewFromInt(1000).Equal(h.c.Referrals().TotalEarned()))
}

func TestCoordinator_ResumeResubmitsResolvedSession(t *testing.T) {
	ledger := newFakeLedger()
	start := t0
	res := &session.Resolution{
		StartTime:  start,
		ResolvedAt: start.Add(time.Minute),
		Duration:   time.Minute,
		Rate:       decimal.NewFromInt(10),
	}
	user := domain.User{SubjectID: testSubject, Session: domain.Session{Active: true, StartTime: &start}}

	c, err := New(user, res, Options{
		Client:  ledger,
		Config:  configstore.New(ledger, testConfig()),
		Pending: newMemPending(),
		Sleep:   func(context.Context, time.Duration) error { return nil },
	})
	require.NoError(t, err)
	assert.Equal(t, session.Resolving, c.Progress(t0).State)

	require.NoError(t, c.Resume(context.Background()))
	assert.Equal(t, session.Idle, c.Progress(t0).State)
	assert.True(t, decimal.NewFromInt(600).Equal(ledger.balance(testSubject)))
}

func TestCoordinator_PoolDrainsSubmissionsOnStop(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(2, 8)
	pool.Start()
	h := newHarness(t, pool)
	h.ledger.creditDelay = 20 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, h.c.StartSession(ctx, t0))
	p := h.c.Poll(ctx, t0.Add(time.Minute))
	assert.NotEqual(t, session.Active, p.State)

	// stopping the poll loop does not cancel the in-flight submission
	cancel()
	pool.Stop()

	assert.True(t, decimal.NewFromInt(600).Equal(h.ledger.balance(testSubject)))
	assert.Equal(t, session.Idle, h.c.Progress(t0.Add(time.Minute)).State)
	checker.Check(0)
}

func TestCoordinator_DispatchAfterStopParks(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	pool.Stop()

	h := newHarness(t, pool)
	ctx := context.Background()
	require.NoError(t, h.c.StartSession(ctx, t0))
	h.c.Poll(ctx, t0.Add(time.Minute))

	pending, err := h.c.PendingEvents(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, session.Resolving, h.c.Progress(t0).State)
}

func TestCoordinator_StartWhileSubmissionInFlight(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	h := newHarness(t, pool)
	ctx := context.Background()
	block := make(chan struct{})
	require.NoError(t, pool.Enqueue(worker.JobFunc(func(context.Context) error {
		<-block
		return nil
	})))

	require.NoError(t, h.c.StartSession(ctx, t0))
	h.c.Poll(ctx, t0.Add(time.Minute))

	assert.ErrorIs(t, h.c.StartSession(ctx, t0.Add(2*time.Minute)), ErrResolutionPending)
	close(block)
}
