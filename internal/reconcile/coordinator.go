// Package reconcile owns the client-side account and reconciles it with the ledger.
//
// Every balance change goes to the ledger first. The local balance is only
// ever replaced by the ledger's answer, never adjusted optimistically.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/accrual"
	"github.com/osse101/GlowMine_Go/internal/configstore"
	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/ledgerclient"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/metrics"
	"github.com/osse101/GlowMine_Go/internal/referral"
	"github.com/osse101/GlowMine_Go/internal/session"
	"github.com/osse101/GlowMine_Go/internal/tasks"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

var (
	// ErrParked is returned when a reward exhausted its retries and was stored for a later attempt
	ErrParked = errors.New("reward parked until the ledger is reachable")

	// ErrResolutionPending blocks a new session while a reward is unconfirmed
	ErrResolutionPending = domain.ErrResolutionPending

	// ErrInFlight is returned when the same reward is already being submitted
	ErrInFlight = fmt.Errorf("%w: submission already in flight", domain.ErrResolutionPending)

	// ErrWithdrawalPending blocks a new withdrawal while an earlier one is unacknowledged
	ErrWithdrawalPending = errors.New("an earlier withdrawal is still awaiting the ledger")
)

// CauseLedgerUnavailable is the outcome cause published for parked rewards
const CauseLedgerUnavailable = "ledger-unavailable"

// PendingStore keeps parked rewards until the ledger confirms or rejects them
type PendingStore interface {
	Park(ctx context.Context, p domain.PendingEvent) error
	ListPending(ctx context.Context) ([]domain.PendingEvent, error)
	Resolve(ctx context.Context, subjectID, reason string) error
}

// Mirror persists the local, non-authoritative view between runs
type Mirror interface {
	SaveUser(ctx context.Context, u domain.User) error
	SaveConfig(ctx context.Context, cfg domain.EconomyConfig) error
	SaveResolution(ctx context.Context, res *session.Resolution) error
}

// WithdrawalJournal keeps the one withdrawal the ledger has not acknowledged
type WithdrawalJournal interface {
	// SaveWithdrawal records req; nil clears the journal
	SaveWithdrawal(ctx context.Context, req *domain.WithdrawalRequest) error
	// LoadWithdrawal returns the recorded request, or nil when there is none
	LoadWithdrawal(ctx context.Context) (*domain.WithdrawalRequest, error)
}

// Options wires a Coordinator. Client, Config and Pending are required.
// Without Withdrawals the journal lives only as long as the process.
type Options struct {
	Client      ledgerclient.Client
	Config      *configstore.Store
	Pending     PendingStore
	Mirror      Mirror
	Withdrawals WithdrawalJournal
	Bus         event.Bus
	Dispatcher  worker.Dispatcher
	Retry       RetryPolicy
	Now         func() time.Time
	Sleep       func(ctx context.Context, d time.Duration) error
}

// Coordinator is the single owner of a subject's User state
type Coordinator struct {
	client      ledgerclient.Client
	config      *configstore.Store
	pending     PendingStore
	mirror      Mirror
	withdrawals WithdrawalJournal
	bus         event.Bus
	dispatcher  worker.Dispatcher
	retry       RetryPolicy
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error

	machine   *session.Machine
	calc      accrual.Calculator
	gate      *tasks.Gate
	referrals *referral.Mirror

	mu   sync.Mutex
	user domain.User

	inflightMu sync.Mutex
	inflight   map[string]struct{}

	fetchMu sync.Mutex
}

// New creates a coordinator for user. res is the unconfirmed resolution
// persisted by a previous run, or nil.
func New(user domain.User, res *session.Resolution, opts Options) (*Coordinator, error) {
	if opts.Client == nil || opts.Config == nil || opts.Pending == nil {
		return nil, fmt.Errorf("%w: client, config and pending store are required", domain.ErrInvalidInput)
	}
	if user.SubjectID == "" {
		return nil, fmt.Errorf("%w: subject id is required", domain.ErrInvalidInput)
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = worker.Inline{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Withdrawals == nil {
		opts.Withdrawals = &memoryJournal{}
	}

	c := &Coordinator{
		client:      opts.Client,
		config:      opts.Config,
		pending:     opts.Pending,
		mirror:      opts.Mirror,
		withdrawals: opts.Withdrawals,
		bus:         opts.Bus,
		dispatcher:  opts.Dispatcher,
		retry:       opts.Retry,
		now:         opts.Now,
		sleep:       opts.Sleep,
		machine:     session.NewMachine(),
		calc:        accrual.NewCalculator(),
		gate:        tasks.NewGate(),
		referrals:   referral.NewMirror(),
		user:        user.Clone(),
		inflight:    make(map[string]struct{}),
	}
	c.machine.Restore(user.Session, res)
	c.gate.Seed(user.Tasks)
	c.referrals.Replace(user.Referrals)

	if c.bus != nil {
		c.bus.Subscribe(event.ConfigChanged, c.onConfigChanged)
	}
	return c, nil
}

// User returns a snapshot of the owned account view
func (c *Coordinator) User() domain.User {
	c.mu.Lock()
	u := c.user.Clone()
	c.mu.Unlock()
	u.Session = c.machine.Snapshot()
	return u
}

// Config returns the current economy config
func (c *Coordinator) Config() domain.EconomyConfig {
	return c.config.Current()
}

// Referrals returns the referral mirror
func (c *Coordinator) Referrals() *referral.Mirror {
	return c.referrals
}

// Progress reports the session countdown at now without resolving it
func (c *Coordinator) Progress(now time.Time) session.Progress {
	return c.machine.Tick(now, c.config.Current().SessionDuration)
}

// Register creates the subject on the ledger (crediting referrerID once) and adopts the answer
func (c *Coordinator) Register(ctx context.Context, referrerID string) (domain.Account, error) {
	c.mu.Lock()
	subjectID, name := c.user.SubjectID, c.user.DisplayName
	c.mu.Unlock()

	acct, err := c.client.Register(ctx, subjectID, name, referrerID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to register subject: %w", err)
	}
	c.adopt(ctx, acct)
	return acct, nil
}

// Resume resubmits the reward of a session that resolved before the last shutdown
func (c *Coordinator) Resume(ctx context.Context) error {
	res, ok := c.machine.Pending()
	if !ok {
		return nil
	}
	return c.submitResolution(ctx, res)
}

// StartSession starts a mining session at now. Parked rewards are flushed first;
// the session is refused while any reward is unconfirmed.
func (c *Coordinator) StartSession(ctx context.Context, now time.Time) error {
	remaining, err := c.RetryPending(ctx)
	if err != nil {
		return err
	}
	if remaining > 0 || c.inflightCount() > 0 {
		return ErrResolutionPending
	}
	if res, ok := c.machine.Pending(); ok {
		// resolved but neither parked nor in flight: resubmit and wait for it
		if err := c.submitResolution(ctx, res); err != nil {
			return err
		}
		if c.machine.State() == session.Resolving {
			return ErrResolutionPending
		}
	}

	if err := c.machine.Start(now); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgSessionStarted, "subject_id", c.subjectID(), "start_time", now)
	c.persistUser(ctx)
	return nil
}

// Poll advances the session at now. When the countdown has finished it freezes
// the reward and hands its submission to the dispatcher. Poll never waits on the ledger
// unless the dispatcher runs jobs inline.
func (c *Coordinator) Poll(ctx context.Context, now time.Time) session.Progress {
	cfg := c.config.Current()
	p := c.machine.Tick(now, cfg.SessionDuration)
	if !p.Done() {
		return p
	}

	res, err := c.machine.Resolve(now, cfg)
	if err != nil {
		return c.machine.Tick(now, cfg.SessionDuration)
	}
	logger.FromContext(ctx).Info(LogMsgSessionResolved, "reason", res.Reason(), "rate", res.Rate, "duration", res.Duration)
	c.persistResolution(ctx, &res)
	c.persistUser(ctx)

	if err := c.submitResolution(ctx, res); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSubmitParked, "reason", res.Reason(), "error", err)
	}
	return c.machine.Tick(now, cfg.SessionDuration)
}

// BeginTask opens the verification window of a task and returns the time left
func (c *Coordinator) BeginTask(id string, now time.Time) (time.Duration, error) {
	c.mu.Lock()
	i := c.user.FindTask(id)
	if i < 0 {
		c.mu.Unlock()
		return 0, domain.ErrTaskNotFound
	}
	task := c.user.Tasks[i]
	c.mu.Unlock()

	if err := c.gate.Begin(task, now); err != nil {
		return 0, err
	}
	return c.gate.Remaining(id, now)
}

// ClaimTask completes a task whose window has elapsed and submits its reward.
// A second claim fails with tasks.ErrAlreadyCompleted and emits nothing.
func (c *Coordinator) ClaimTask(ctx context.Context, id string, now time.Time) error {
	c.mu.Lock()
	i := c.user.FindTask(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	if c.user.Tasks[i].Completed {
		c.mu.Unlock()
		return tasks.ErrAlreadyCompleted
	}
	if err := c.gate.Claim(id, now); err != nil {
		c.mu.Unlock()
		return err
	}
	c.user.Tasks[i].Completed = true
	ev := domain.RewardEvent{
		SubjectID: c.user.SubjectID,
		Amount:    c.user.Tasks[i].Reward,
		Reason:    domain.TaskReason(id),
	}
	c.mu.Unlock()

	c.persistUser(ctx)
	return c.dispatch(ctx, ev)
}

// ReplaceTasks swaps the task catalogue, keeping the completion flag of tasks whose id survives
func (c *Coordinator) ReplaceTasks(ctx context.Context, catalogue []domain.Task) {
	c.mu.Lock()
	done := make(map[string]bool, len(c.user.Tasks))
	for _, t := range c.user.Tasks {
		if t.Completed {
			done[t.ID] = true
		}
	}
	next := make([]domain.Task, len(catalogue))
	for i, t := range catalogue {
		t.Completed = done[t.ID]
		next[i] = t
	}
	c.user.Tasks = next
	c.mu.Unlock()

	c.gate.Seed(next)
	c.persistUser(ctx)
}

// RequestWithdrawal validates the request locally and then submits it to the ledger.
// A request that fails validation never leaves the process. A request the ledger
// never acknowledged is journaled: asking again for the same amount and address
// replays it under its original request id, and any other request first settles it.
func (c *Coordinator) RequestWithdrawal(ctx context.Context, amount decimal.Decimal, address string) (domain.WithdrawalReceipt, error) {
	address = strings.TrimSpace(address)
	prev, err := c.withdrawals.LoadWithdrawal(ctx)
	if err != nil {
		return domain.WithdrawalReceipt{}, fmt.Errorf("failed to load unacknowledged withdrawal: %w", err)
	}
	if prev != nil {
		if prev.Amount.Equal(amount) && prev.Address == address {
			// validated when it was first made; the balance may already reflect it
			return c.sendWithdrawal(ctx, *prev)
		}
		if _, err := c.sendWithdrawal(ctx, *prev); err != nil && !isSettled(err) {
			return domain.WithdrawalReceipt{}, fmt.Errorf("%w: %w", ErrWithdrawalPending, err)
		}
	}

	u := c.User()
	if err := withdrawal.Validate(amount, address, u.Balance, c.config.Current()); err != nil {
		return domain.WithdrawalReceipt{}, err
	}

	req := domain.WithdrawalRequest{
		RequestID: uuid.NewString(),
		SubjectID: u.SubjectID,
		Amount:    amount,
		Address:   address,
	}
	if err := c.withdrawals.SaveWithdrawal(ctx, &req); err != nil {
		return domain.WithdrawalReceipt{}, fmt.Errorf("failed to journal withdrawal: %w", err)
	}
	return c.sendWithdrawal(ctx, req)
}

// RetryWithdrawal replays the unacknowledged withdrawal, if any, under its original
// request id. ok is false when there was nothing to replay.
func (c *Coordinator) RetryWithdrawal(ctx context.Context) (receipt domain.WithdrawalReceipt, ok bool, err error) {
	prev, err := c.withdrawals.LoadWithdrawal(ctx)
	if err != nil {
		return receipt, false, fmt.Errorf("failed to load unacknowledged withdrawal: %w", err)
	}
	if prev == nil {
		return receipt, false, nil
	}
	receipt, err = c.sendWithdrawal(ctx, *prev)
	return receipt, true, err
}

// PendingWithdrawal returns the withdrawal awaiting acknowledgement, or nil
func (c *Coordinator) PendingWithdrawal(ctx context.Context) (*domain.WithdrawalRequest, error) {
	return c.withdrawals.LoadWithdrawal(ctx)
}

// sendWithdrawal submits req with retries. The journal entry is cleared once the
// ledger answers, accepted or rejected; a transport failure keeps it.
func (c *Coordinator) sendWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (domain.WithdrawalReceipt, error) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	var (
		receipt domain.WithdrawalReceipt
		err     error
	)
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			_ = c.sleep(ctx, c.retry.Delay(attempt))
		}
		receipt, err = c.client.Withdraw(ctx, req)
		if err == nil || !ledgerclient.IsRetryable(err) {
			break
		}
		log.Warn(LogMsgWithdrawRetry, "request_id", req.RequestID, "attempt", attempt+1, "error", err)
	}
	if err != nil && !isSettled(err) {
		log.Warn(LogMsgWithdrawUnacked, "request_id", req.RequestID, "error", err)
		return receipt, err
	}

	if clearErr := c.withdrawals.SaveWithdrawal(ctx, nil); clearErr != nil {
		log.Warn(LogMsgPersistFailed, "request_id", req.RequestID, "error", clearErr)
	}
	if err != nil {
		return receipt, err
	}

	c.publish(ctx, event.NewWithdrawalRequestedEvent(req))
	if _, err := c.FetchAuthoritative(ctx); err != nil {
		log.Warn(LogMsgFetchFailed, "error", err)
	}
	return receipt, nil
}

// isSettled reports whether err is the ledger's own answer rather than a lost one
func isSettled(err error) bool {
	_, ok := ledgerclient.AsRejection(err)
	return ok
}

// Submit sends ev to the ledger, retrying transient failures with backoff.
// After the retry ceiling the event is parked and ErrParked returned.
// A confirmed submission is followed by a fetch of the authoritative balance.
func (c *Coordinator) Submit(ctx context.Context, ev domain.RewardEvent) (domain.CreditResult, error) {
	if !c.acquire(ev.Reason) {
		return domain.CreditResult{}, ErrInFlight
	}
	defer c.release(ev.Reason)
	return c.submit(ctx, ev, c.retry.MaxRetries, true)
}

// RetryPending makes one attempt for every parked reward not already in flight
// and returns how many remain parked.
func (c *Coordinator) RetryPending(ctx context.Context) (int, error) {
	ctx = context.WithoutCancel(ctx)
	parked, err := c.pending.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list parked rewards: %w", err)
	}
	for _, p := range parked {
		if !c.acquire(p.Event.Reason) {
			continue
		}
		_, _ = c.submit(ctx, p.Event, 0, false)
		c.release(p.Event.Reason)
	}

	rest, err := c.pending.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list parked rewards: %w", err)
	}
	return len(rest), nil
}

// PendingEvents returns the parked rewards awaiting the ledger
func (c *Coordinator) PendingEvents(ctx context.Context) ([]domain.PendingEvent, error) {
	return c.pending.ListPending(ctx)
}

// FetchAuthoritative replaces the local balance and referrals with the ledger's
func (c *Coordinator) FetchAuthoritative(ctx context.Context) (domain.Account, error) {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	acct, err := c.client.Balance(ctx, c.subjectID())
	if err != nil {
		return domain.Account{}, err
	}
	c.adopt(ctx, acct)
	return acct, nil
}

// RefreshConfig pulls the economy config and persists the merged result
func (c *Coordinator) RefreshConfig(ctx context.Context) (domain.EconomyConfig, error) {
	cfg, err := c.config.Refresh(ctx)
	if err != nil {
		return cfg, err
	}
	c.persistConfig(ctx, cfg)
	return cfg, nil
}

// submit runs the credit attempts for ev. announce controls whether parking
// publishes an OutcomeParked event; re-parks from a sweep stay quiet.
func (c *Coordinator) submit(ctx context.Context, ev domain.RewardEvent, retries int, announce bool) (domain.CreditResult, error) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			metrics.RewardRetries.WithLabelValues(ev.Kind()).Inc()
			_ = c.sleep(ctx, c.retry.Delay(attempt))
		}
		attempts++

		res, err := c.client.Credit(ctx, ev)
		if err == nil {
			c.confirm(ctx, ev, event.OutcomeApplied, attempts)
			return res, nil
		}
		if errors.Is(err, ledgerclient.ErrDuplicate) {
			c.confirm(ctx, ev, event.OutcomeAlreadyApplied, attempts)
			return res, nil
		}
		if rej, ok := ledgerclient.AsRejection(err); ok {
			c.reject(ctx, ev, rej, attempts)
			return res, err
		}
		lastErr = err
		log.Warn(LogMsgSubmitRetry, "reason", ev.Reason, "attempt", attempts, "error", err)
	}
	return domain.CreditResult{}, c.park(ctx, ev, attempts, lastErr, announce)
}

func (c *Coordinator) confirm(ctx context.Context, ev domain.RewardEvent, outcome event.Type, attempts int) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSubmitConfirmed, "reason", ev.Reason, "outcome", outcome, "attempts", attempts)

	if err := c.pending.Resolve(ctx, ev.SubjectID, ev.Reason); err != nil {
		log.Warn(LogMsgPendingResolve, "reason", ev.Reason, "error", err)
	}
	c.publish(ctx, event.NewRewardOutcomeEvent(outcome, ev, attempts, ""))

	// the session leaves Resolving only once the ledger's balance is merged,
	// or after the fetch failed
	if _, err := c.FetchAuthoritative(ctx); err != nil {
		log.Warn(LogMsgFetchFailed, "error", err)
	}
	if ev.Kind() == domain.ReasonMining {
		c.completeSession(ctx, ev.Reason)
	}
}

// reject settles an authoritative refusal. A refused mining reward releases the
// session. A refused task stays completed; the refusal is only surfaced.
func (c *Coordinator) reject(ctx context.Context, ev domain.RewardEvent, rej *ledgerclient.RejectionError, attempts int) {
	log := logger.FromContext(ctx)
	log.Warn(LogMsgSubmitRejected, "reason", ev.Reason, "code", rej.Code, "status", rej.Status)

	if err := c.pending.Resolve(ctx, ev.SubjectID, ev.Reason); err != nil {
		log.Warn(LogMsgPendingResolve, "reason", ev.Reason, "error", err)
	}
	if ev.Kind() == domain.ReasonMining {
		c.completeSession(ctx, ev.Reason)
	}

	cause := rej.Code
	if cause == "" {
		cause = ledgerclient.CodeRejected
	}
	c.publish(ctx, event.NewRewardOutcomeEvent(event.OutcomeRejected, ev, attempts, cause))
}

func (c *Coordinator) park(ctx context.Context, ev domain.RewardEvent, attempts int, cause error, announce bool) error {
	p := domain.PendingEvent{
		Event:    ev,
		Attempts: attempts,
		ParkedAt: c.now(),
	}
	if cause != nil {
		p.LastError = cause.Error()
	}
	if err := c.pending.Park(ctx, p); err != nil {
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "reason", ev.Reason, "error", err)
		return fmt.Errorf("%w: %v", ErrParked, err)
	}
	if announce {
		logger.FromContext(ctx).Warn(LogMsgSubmitParked, "reason", ev.Reason, "attempts", attempts)
		c.publish(ctx, event.NewRewardOutcomeEvent(event.OutcomeParked, ev, attempts, CauseLedgerUnavailable))
	}
	return ErrParked
}

// dispatch hands ev to the worker pool. A reward already in flight is not queued twice.
func (c *Coordinator) dispatch(ctx context.Context, ev domain.RewardEvent) error {
	if !c.acquire(ev.Reason) {
		return nil
	}
	job := worker.JobFunc(func(jobCtx context.Context) error {
		defer c.release(ev.Reason)
		_, err := c.submit(jobCtx, ev, c.retry.MaxRetries, true)
		return err
	})
	if err := c.dispatcher.Enqueue(job); err != nil {
		c.release(ev.Reason)
		logger.FromContext(ctx).Warn(LogMsgDispatchFailed, "reason", ev.Reason, "error", err)
		return c.park(ctx, ev, 0, err, true)
	}
	return nil
}

func (c *Coordinator) submitResolution(ctx context.Context, res session.Resolution) error {
	amount, err := c.calc.Reward(res, res.Elapsed())
	if err != nil {
		return err
	}
	return c.dispatch(ctx, domain.RewardEvent{
		SubjectID: c.subjectID(),
		Amount:    amount,
		Reason:    res.Reason(),
	})
}

func (c *Coordinator) completeSession(ctx context.Context, reason string) {
	if err := c.machine.Complete(reason); err != nil {
		return
	}
	c.persistResolution(ctx, nil)
	c.persistUser(ctx)
}

// adopt makes the ledger's account the local truth
func (c *Coordinator) adopt(ctx context.Context, acct domain.Account) {
	c.mu.Lock()
	c.user.Balance = acct.Balance
	c.user.Referrals = append([]domain.Referral(nil), acct.Referrals...)
	c.mu.Unlock()

	c.referrals.Replace(acct.Referrals)
	c.persistUser(ctx)
	c.publish(ctx, event.NewBalanceSyncedEvent(acct))
}

func (c *Coordinator) onConfigChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ConfigChangedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	c.persistConfig(ctx, payload.Config)
	return nil
}

func (c *Coordinator) subjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.SubjectID
}

func (c *Coordinator) acquire(reason string) bool {
	c.inflightMu.Lock()
	defer c.inflightMu.Unlock()
	if _, busy := c.inflight[reason]; busy {
		return false
	}
	c.inflight[reason] = struct{}{}
	return true
}

func (c *Coordinator) release(reason string) {
	c.inflightMu.Lock()
	delete(c.inflight, reason)
	c.inflightMu.Unlock()
}

func (c *Coordinator) inflightCount() int {
	c.inflightMu.Lock()
	defer c.inflightMu.Unlock()
	return len(c.inflight)
}

func (c *Coordinator) publish(ctx context.Context, evt event.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func (c *Coordinator) persistUser(ctx context.Context) {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.SaveUser(ctx, c.User()); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "key", domain.SnapshotKeyUser, "error", err)
	}
}

func (c *Coordinator) persistConfig(ctx context.Context, cfg domain.EconomyConfig) {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.SaveConfig(ctx, cfg); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "key", domain.SnapshotKeyConfig, "error", err)
	}
}

func (c *Coordinator) persistResolution(ctx context.Context, res *session.Resolution) {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.SaveResolution(ctx, res); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "key", "resolution", "error", err)
	}
}
