package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/repository"
)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetAccount returns the balance and the referrals credited to the subject
func (r *LedgerRepository) GetAccount(ctx context.Context, subjectID string) (*domain.Account, error) {
	var raw string
	err := r.db.QueryRow(ctx, queryGetBalance, subjectID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	balance, err := parseNumeric(raw)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, queryListReferrals, subjectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListReferrals, err)
	}
	defer rows.Close()

	referrals := []domain.Referral{}
	for rows.Next() {
		var (
			ref    domain.Referral
			earned string
		)
		if err := rows.Scan(&ref.ID, &ref.Username, &earned, &ref.Date); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListReferrals, err)
		}
		if ref.Earned, err = parseNumeric(earned); err != nil {
			return nil, err
		}
		referrals = append(referrals, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListReferrals, err)
	}

	return &domain.Account{SubjectID: subjectID, Balance: balance, Referrals: referrals}, nil
}

// GetWithdrawal returns the receipt stored for requestID
func (r *LedgerRepository) GetWithdrawal(ctx context.Context, requestID string) (*domain.WithdrawalReceipt, error) {
	var (
		receipt domain.WithdrawalReceipt
		balance string
	)
	err := r.db.QueryRow(ctx, queryGetWithdrawal, requestID).
		Scan(&receipt.RequestID, &receipt.Accepted, &receipt.Reason, &balance, &receipt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWithdrawal, err)
	}
	if receipt.Balance, err = parseNumeric(balance); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetEconomyConfig reads the single economy config row
func (r *LedgerRepository) GetEconomyConfig(ctx context.Context) (*domain.EconomyConfig, error) {
	var (
		rate, referral, minWithdraw, exchange string
		seconds                               int64
	)
	err := r.db.QueryRow(ctx, queryGetEconomyConfig).Scan(&rate, &seconds, &referral, &minWithdraw, &exchange)
	if errors.Is(err, pgx.ErrNoRows) {
		cfg := domain.DefaultEconomyConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetConfig, err)
	}

	cfg := domain.EconomyConfig{SessionDuration: time.Duration(seconds) * time.Second}
	for _, f := range []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&cfg.AccrualRate, rate},
		{&cfg.ReferralReward, referral},
		{&cfg.MinWithdraw, minWithdraw},
		{&cfg.ExchangeRate, exchange},
	} {
		if *f.dst, err = parseNumeric(f.raw); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// UpdateEconomyConfig replaces the economy config row
func (r *LedgerRepository) UpdateEconomyConfig(ctx context.Context, cfg domain.EconomyConfig) error {
	_, err := r.db.Exec(ctx, queryUpsertEconomyConfig,
		cfg.AccrualRate.String(),
		cfg.SessionSeconds(),
		cfg.ReferralReward.String(),
		cfg.MinWithdraw.String(),
		cfg.ExchangeRate.String(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateConfig, err)
	}
	return nil
}

// BeginTx starts a transaction and returns a LedgerTx
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ledgerTx{tx: tx}, nil
}

// ledgerTx implements repository.LedgerTx
type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *ledgerTx) CreateSubject(ctx context.Context, subjectID, displayName string) (bool, error) {
	var created bool
	if err := t.tx.QueryRow(ctx, queryUpsertSubject, subjectID, displayName).Scan(&created); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertSubject, err)
	}
	return created, nil
}

func (t *ledgerTx) SubjectExists(ctx context.Context, subjectID string) (bool, error) {
	var exists bool
	if err := t.tx.QueryRow(ctx, querySubjectExists, subjectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	return exists, nil
}

func (t *ledgerTx) GetBalanceForUpdate(ctx context.Context, subjectID string) (decimal.Decimal, error) {
	var raw string
	err := t.tx.QueryRow(ctx, queryGetBalanceForUpdate, subjectID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrSubjectNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	return parseNumeric(raw)
}

func (t *ledgerTx) InsertEntry(ctx context.Context, subjectID, reason string, amount decimal.Decimal) (bool, error) {
	tag, err := t.tx.Exec(ctx, queryInsertEntry, uuid.New(), subjectID, reason, amount.String())
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEntry, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *ledgerTx) AdjustBalance(ctx context.Context, subjectID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var raw string
	err := t.tx.QueryRow(ctx, queryAdjustBalance, subjectID, delta.String()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrSubjectNotFound
	}
	if err != nil {
		if isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientFunds
		}
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToAdjustBalance, err)
	}
	return parseNumeric(raw)
}

func (t *ledgerTx) InsertReferral(ctx context.Context, refereeID, referrerID string, earned decimal.Decimal) error {
	if _, err := t.tx.Exec(ctx, queryInsertReferral, refereeID, referrerID, earned.String()); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertReferral, err)
	}
	return nil
}

func (t *ledgerTx) InsertWithdrawal(ctx context.Context, req domain.WithdrawalRequest, receipt domain.WithdrawalReceipt) (bool, error) {
	tag, err := t.tx.Exec(ctx, queryInsertWithdrawal,
		req.RequestID,
		req.SubjectID,
		req.Amount.String(),
		req.Address,
		receipt.Accepted,
		receipt.Reason,
		receipt.Balance.String(),
		receipt.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertWithdrawal, err)
	}
	return tag.RowsAffected() == 1, nil
}
