package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// Ledger handles persistence of balances, ledger entries, referrals,
// withdrawals and the economy config
type Ledger interface {
	// GetAccount returns the balance and referrals of a subject, or domain.ErrSubjectNotFound
	GetAccount(ctx context.Context, subjectID string) (*domain.Account, error)

	// GetWithdrawal returns a stored receipt, or domain.ErrWithdrawalNotFound
	GetWithdrawal(ctx context.Context, requestID string) (*domain.WithdrawalReceipt, error)

	GetEconomyConfig(ctx context.Context) (*domain.EconomyConfig, error)
	UpdateEconomyConfig(ctx context.Context, cfg domain.EconomyConfig) error

	// Transaction support
	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx defines the operations that must commit together
type LedgerTx interface {
	Tx

	// CreateSubject inserts the subject if it is new and reports whether it was created
	CreateSubject(ctx context.Context, subjectID, displayName string) (bool, error)
	SubjectExists(ctx context.Context, subjectID string) (bool, error)

	// GetBalanceForUpdate locks the subject row and returns its balance
	GetBalanceForUpdate(ctx context.Context, subjectID string) (decimal.Decimal, error)

	// InsertEntry records (subject, reason) once. It reports false when the
	// reason was already applied and leaves the balance untouched.
	InsertEntry(ctx context.Context, subjectID, reason string, amount decimal.Decimal) (bool, error)

	// AdjustBalance adds delta to the balance and returns the new balance
	AdjustBalance(ctx context.Context, subjectID string, delta decimal.Decimal) (decimal.Decimal, error)

	InsertReferral(ctx context.Context, refereeID, referrerID string, earned decimal.Decimal) error

	// InsertWithdrawal stores the receipt once per request id and reports whether it was new
	InsertWithdrawal(ctx context.Context, req domain.WithdrawalRequest, receipt domain.WithdrawalReceipt) (bool, error)
}
