// Package withdrawal validates payout requests before they reach the ledger.
package withdrawal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// Rejection reasons
const (
	ReasonBelowMinimum        = domain.WithdrawRejectBelowMinimum
	ReasonInsufficientBalance = domain.WithdrawRejectInsufficientBalance
	ReasonMalformedAddress    = domain.WithdrawRejectMalformedAddress
)

// ValidationError lists every rule a request broke. Reason is the first of them.
type ValidationError struct {
	Reason     string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("withdrawal rejected: %s", strings.Join(e.Violations, ", "))
}

// Unwrap lets callers match domain.ErrWithdrawRejected
func (e *ValidationError) Unwrap() error {
	return domain.ErrWithdrawRejected
}

// Has reports whether reason is among the violations
func (e *ValidationError) Has(reason string) bool {
	for _, v := range e.Violations {
		if v == reason {
			return true
		}
	}
	return false
}

// Validate checks amount against the configured minimum and the balance, and
// the trimmed address length. It returns nil or a *ValidationError.
func Validate(amount decimal.Decimal, address string, balance decimal.Decimal, cfg domain.EconomyConfig) error {
	var violations []string

	if !amount.IsPositive() || amount.LessThan(cfg.MinWithdraw) {
		violations = append(violations, ReasonBelowMinimum)
	}
	if amount.GreaterThan(balance) {
		violations = append(violations, ReasonInsufficientBalance)
	}
	if utf8.RuneCountInString(strings.TrimSpace(address)) <= domain.MinAddressLength {
		violations = append(violations, ReasonMalformedAddress)
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Reason: violations[0], Violations: violations}
}
