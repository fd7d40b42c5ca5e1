// Package ledger is the authoritative balance service: it applies credits
// exactly once per (subject, reason), pays out withdrawals and owns the
// economy config.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/metrics"
	"github.com/osse101/GlowMine_Go/internal/repository"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
)

// Service defines the ledger business logic
type Service interface {
	// Register creates the subject if needed. A new subject with a known
	// referrer other than itself credits that referrer once.
	Register(ctx context.Context, subjectID, displayName, referrerID string) (domain.Account, error)

	Balance(ctx context.Context, subjectID string) (domain.Account, error)

	// Credit applies ev once; a replayed reason reports Duplicate with the current balance
	Credit(ctx context.Context, ev domain.RewardEvent) (domain.CreditResult, error)

	// Withdraw debits the subject. A rejected request returns its receipt and a
	// *withdrawal.ValidationError. Replaying a request id returns the stored outcome.
	Withdraw(ctx context.Context, req domain.WithdrawalRequest) (domain.WithdrawalReceipt, error)

	GetConfig(ctx context.Context) (domain.EconomyConfig, error)
	PutConfig(ctx context.Context, cfg domain.EconomyConfig) (domain.EconomyConfig, error)
}

// Options tunes the service
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Now       func() time.Time
}

type service struct {
	repo  repository.Ledger
	bus   event.Bus
	cache *balanceCache
	now   func() time.Time
}

// NewService creates a new ledger service. bus may be nil.
func NewService(repo repository.Ledger, bus event.Bus, opts Options) Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:  repo,
		bus:   bus,
		cache: newBalanceCache(opts.CacheSize, opts.CacheTTL),
		now:   opts.Now,
	}
}

func (s *service) Register(ctx context.Context, subjectID, displayName, referrerID string) (domain.Account, error) {
	log := logger.FromContext(ctx)

	subjectID = strings.TrimSpace(subjectID)
	referrerID = strings.TrimSpace(referrerID)
	if subjectID == "" {
		return domain.Account{}, fmt.Errorf("%w: subject_id is required", domain.ErrInvalidInput)
	}

	cfg, err := s.repo.GetEconomyConfig(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to load economy config: %w", err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	defer repository.SafeRollback(ctx, tx)

	created, err := tx.CreateSubject(ctx, subjectID, strings.TrimSpace(displayName))
	if err != nil {
		return domain.Account{}, err
	}

	credited := false
	if created && referrerID != "" && referrerID != subjectID {
		credited, err = s.creditReferrer(ctx, tx, subjectID, referrerID, cfg.ReferralReward)
		if err != nil {
			return domain.Account{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Account{}, fmt.Errorf("failed to commit registration: %w", err)
	}
	s.cache.Invalidate(subjectID, referrerID)

	if created {
		log.Info(LogMsgSubjectRegistered, "subject_id", subjectID, "referrer_id", referrerID)
	}
	if credited {
		metrics.LedgerCredits.WithLabelValues(domain.ReasonReferral, metrics.ResultApplied).Inc()
		metrics.LedgerCreditedAmount.Add(cfg.ReferralReward.InexactFloat64())
		log.Info(LogMsgReferralCredited, "referrer_id", referrerID, "referee_id", subjectID, "amount", cfg.ReferralReward)
	}

	return s.loadAccount(ctx, subjectID)
}

// creditReferrer records the referral and credits the referrer within tx.
// An unknown referrer is ignored.
func (s *service) creditReferrer(ctx context.Context, tx repository.LedgerTx, refereeID, referrerID string, reward decimal.Decimal) (bool, error) {
	exists, err := tx.SubjectExists(ctx, referrerID)
	if err != nil || !exists {
		return false, err
	}

	credited := false
	if reward.IsPositive() {
		inserted, err := tx.InsertEntry(ctx, referrerID, domain.ReferralReason(refereeID), reward)
		if err != nil {
			return false, err
		}
		if inserted {
			if _, err := tx.AdjustBalance(ctx, referrerID, reward); err != nil {
				return false, err
			}
			credited = true
		}
	}

	if err := tx.InsertReferral(ctx, refereeID, referrerID, reward); err != nil {
		return false, err
	}
	return credited, nil
}

func (s *service) Balance(ctx context.Context, subjectID string) (domain.Account, error) {
	if acct, ok := s.cache.Get(subjectID); ok {
		metrics.BalanceCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return acct, nil
	}
	metrics.BalanceCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
	return s.loadAccount(ctx, subjectID)
}

func (s *service) loadAccount(ctx context.Context, subjectID string) (domain.Account, error) {
	acct, err := s.repo.GetAccount(ctx, subjectID)
	if err != nil {
		return domain.Account{}, err
	}
	s.cache.Set(*acct)
	return *acct, nil
}

func (s *service) Credit(ctx context.Context, ev domain.RewardEvent) (domain.CreditResult, error) {
	log := logger.FromContext(ctx)

	if err := validateCredit(ev); err != nil {
		return domain.CreditResult{}, err
	}
	kind := ev.Kind()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return domain.CreditResult{}, err
	}
	defer repository.SafeRollback(ctx, tx)

	// the row lock serialises credits for one subject
	balance, err := tx.GetBalanceForUpdate(ctx, ev.SubjectID)
	if err != nil {
		return domain.CreditResult{}, err
	}

	inserted, err := tx.InsertEntry(ctx, ev.SubjectID, ev.Reason, ev.Amount)
	if err != nil {
		return domain.CreditResult{}, err
	}
	if !inserted {
		metrics.LedgerCredits.WithLabelValues(kind, metrics.ResultDuplicate).Inc()
		log.Info(LogMsgCreditDuplicate, "subject_id", ev.SubjectID, "reason", ev.Reason)
		return domain.CreditResult{Duplicate: true, Balance: balance}, nil
	}

	balance, err = tx.AdjustBalance(ctx, ev.SubjectID, ev.Amount)
	if err != nil {
		return domain.CreditResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.CreditResult{}, fmt.Errorf("failed to commit credit: %w", err)
	}
	s.cache.Invalidate(ev.SubjectID)

	metrics.LedgerCredits.WithLabelValues(kind, metrics.ResultApplied).Inc()
	metrics.LedgerCreditedAmount.Add(ev.Amount.InexactFloat64())
	log.Info(LogMsgCreditApplied, "subject_id", ev.SubjectID, "reason", ev.Reason, "amount", ev.Amount, "balance", balance)

	return domain.CreditResult{Applied: true, Balance: balance}, nil
}

// validateCredit accepts positive amounts of at most CreditScale decimals and
// client-originated reason kinds with a non-empty instance id
func validateCredit(ev domain.RewardEvent) error {
	if strings.TrimSpace(ev.SubjectID) == "" {
		return fmt.Errorf("%w: subject_id is required", domain.ErrInvalidInput)
	}
	if !ev.Amount.IsPositive() || !ev.Amount.Equal(ev.Amount.Round(domain.CreditScale)) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, ev.Amount)
	}
	kind, instance, ok := strings.Cut(ev.Reason, domain.ReasonSeparator)
	if !ok || strings.TrimSpace(instance) == "" {
		return fmt.Errorf("%w: %q", domain.ErrInvalidReason, ev.Reason)
	}
	switch kind {
	case domain.ReasonMining, domain.ReasonTask:
		return nil
	default:
		// referral and withdraw entries are written by the ledger itself
		return fmt.Errorf("%w: %q", domain.ErrInvalidReason, ev.Reason)
	}
}

func (s *service) Withdraw(ctx context.Context, req domain.WithdrawalRequest) (domain.WithdrawalReceipt, error) {
	log := logger.FromContext(ctx)

	req.RequestID = strings.TrimSpace(req.RequestID)
	if req.RequestID == "" || strings.TrimSpace(req.SubjectID) == "" {
		return domain.WithdrawalReceipt{}, fmt.Errorf("%w: request_id and subject_id are required", domain.ErrInvalidInput)
	}

	if receipt, err := s.repo.GetWithdrawal(ctx, req.RequestID); err == nil {
		log.Info(LogMsgWithdrawalReplayed, "request_id", req.RequestID, "accepted", receipt.Accepted)
		return replay(*receipt)
	} else if !errors.Is(err, domain.ErrWithdrawalNotFound) {
		return domain.WithdrawalReceipt{}, err
	}

	cfg, err := s.repo.GetEconomyConfig(ctx)
	if err != nil {
		return domain.WithdrawalReceipt{}, fmt.Errorf("failed to load economy config: %w", err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return domain.WithdrawalReceipt{}, err
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.GetBalanceForUpdate(ctx, req.SubjectID)
	if err != nil {
		return domain.WithdrawalReceipt{}, err
	}

	receipt := domain.WithdrawalReceipt{
		RequestID: req.RequestID,
		Balance:   balance,
		CreatedAt: s.now().UTC(),
	}
	verr := withdrawal.Validate(req.Amount, req.Address, balance, cfg)
	var rejection *withdrawal.ValidationError
	if errors.As(verr, &rejection) {
		receipt.Reason = rejection.Reason
	} else {
		receipt.Accepted = true
		receipt.Balance = balance.Sub(req.Amount)
	}

	inserted, err := tx.InsertWithdrawal(ctx, req, receipt)
	if err != nil {
		return domain.WithdrawalReceipt{}, err
	}
	if !inserted {
		// a concurrent request with the same id won the race
		repository.SafeRollback(ctx, tx)
		stored, err := s.repo.GetWithdrawal(ctx, req.RequestID)
		if err != nil {
			return domain.WithdrawalReceipt{}, err
		}
		return replay(*stored)
	}

	if receipt.Accepted {
		if _, err := tx.InsertEntry(ctx, req.SubjectID, domain.WithdrawReason(req.RequestID), req.Amount.Neg()); err != nil {
			return domain.WithdrawalReceipt{}, err
		}
		if receipt.Balance, err = tx.AdjustBalance(ctx, req.SubjectID, req.Amount.Neg()); err != nil {
			return domain.WithdrawalReceipt{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.WithdrawalReceipt{}, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	if !receipt.Accepted {
		metrics.Withdrawals.WithLabelValues(metrics.ResultRejected).Inc()
		log.Info(LogMsgWithdrawalRejected, "request_id", req.RequestID, "subject_id", req.SubjectID, "reason", receipt.Reason)
		return receipt, verr
	}

	s.cache.Invalidate(req.SubjectID)
	metrics.Withdrawals.WithLabelValues(metrics.ResultAccepted).Inc()
	log.Info(LogMsgWithdrawalAccepted, "request_id", req.RequestID, "subject_id", req.SubjectID, "amount", req.Amount, "balance", receipt.Balance)
	s.publish(ctx, event.NewWithdrawalRequestedEvent(req))

	return receipt, nil
}

// replay turns a stored receipt back into the original outcome
func replay(receipt domain.WithdrawalReceipt) (domain.WithdrawalReceipt, error) {
	if receipt.Accepted {
		return receipt, nil
	}
	return receipt, &withdrawal.ValidationError{Reason: receipt.Reason, Violations: []string{receipt.Reason}}
}

func (s *service) GetConfig(ctx context.Context) (domain.EconomyConfig, error) {
	cfg, err := s.repo.GetEconomyConfig(ctx)
	if err != nil {
		return domain.EconomyConfig{}, err
	}
	return *cfg, nil
}

func (s *service) PutConfig(ctx context.Context, cfg domain.EconomyConfig) (domain.EconomyConfig, error) {
	if err := cfg.Validate(); err != nil {
		return domain.EconomyConfig{}, err
	}
	if err := s.repo.UpdateEconomyConfig(ctx, cfg); err != nil {
		return domain.EconomyConfig{}, err
	}

	logger.FromContext(ctx).Info(LogMsgConfigUpdated,
		"accrual_rate", cfg.AccrualRate,
		"session_seconds", cfg.SessionSeconds(),
		"referral_reward", cfg.ReferralReward,
		"min_withdraw", cfg.MinWithdraw,
		"exchange_rate", cfg.ExchangeRate)
	s.publish(ctx, event.NewConfigChangedEvent(cfg))

	return s.GetConfig(ctx)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", e.Type, "error", err)
	}
}
