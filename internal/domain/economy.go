package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EconomyConfig holds the economic parameters supplied by the backend.
// Every value is finite and non-negative; the accrual rate and the session
// duration are strictly positive.
type EconomyConfig struct {
	AccrualRate     decimal.Decimal `json:"accrual_rate"`     // reward units per second
	SessionDuration time.Duration   `json:"session_duration"` // whole seconds
	ReferralReward  decimal.Decimal `json:"referral_reward"`
	MinWithdraw     decimal.Decimal `json:"min_withdraw"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"` // reward units per USD
}

// EconomyConfigUpdate is a partially-trusted config payload.
// A nil field means the value was missing or malformed at the source.
type EconomyConfigUpdate struct {
	AccrualRate    *float64 `json:"accrual_rate,omitempty"`
	SessionSeconds *float64 `json:"session_duration_seconds,omitempty"`
	ReferralReward *float64 `json:"referral_reward,omitempty"`
	MinWithdraw    *float64 `json:"min_withdraw,omitempty"`
	ExchangeRate   *float64 `json:"exchange_rate,omitempty"`
}

// DefaultEconomyConfig returns the built-in economy used until the backend answers
func DefaultEconomyConfig() EconomyConfig {
	return EconomyConfig{
		AccrualRate:     decimal.RequireFromString(DefaultAccrualRate),
		SessionDuration: DefaultSessionDuration,
		ReferralReward:  decimal.NewFromInt(DefaultReferralReward),
		MinWithdraw:     decimal.NewFromInt(DefaultMinWithdraw),
		ExchangeRate:    decimal.NewFromInt(DefaultExchangeRate),
	}
}

// SessionSeconds returns the session duration as whole seconds
func (c EconomyConfig) SessionSeconds() int64 {
	return int64(c.SessionDuration / time.Second)
}

// ToUpdate converts a trusted config into the wire representation
func (c EconomyConfig) ToUpdate() EconomyConfigUpdate {
	rate := c.AccrualRate.InexactFloat64()
	secs := float64(c.SessionSeconds())
	ref := c.ReferralReward.InexactFloat64()
	minW := c.MinWithdraw.InexactFloat64()
	ex := c.ExchangeRate.InexactFloat64()
	return EconomyConfigUpdate{
		AccrualRate:    &rate,
		SessionSeconds: &secs,
		ReferralReward: &ref,
		MinWithdraw:    &minW,
		ExchangeRate:   &ex,
	}
}

// USDValue converts a balance to its payout value at the configured exchange rate.
// A zero exchange rate yields zero rather than dividing by it.
func (c EconomyConfig) USDValue(balance decimal.Decimal) decimal.Decimal {
	if c.ExchangeRate.IsZero() {
		return decimal.Zero
	}
	return balance.DivRound(c.ExchangeRate, 2)
}

// Validate checks the value ranges and that the duration is whole seconds
func (c EconomyConfig) Validate() error {
	switch {
	case !c.AccrualRate.IsPositive():
		return fmt.Errorf("%w: accrual_rate must be positive", ErrInvalidConfig)
	case c.SessionDuration < MinSessionDuration:
		return fmt.Errorf("%w: session_duration must be at least %s", ErrInvalidConfig, MinSessionDuration)
	case c.SessionDuration%time.Second != 0:
		return fmt.Errorf("%w: session_duration must be whole seconds", ErrInvalidConfig)
	case c.ReferralReward.IsNegative():
		return fmt.Errorf("%w: referral_reward must not be negative", ErrInvalidConfig)
	case c.MinWithdraw.IsNegative():
		return fmt.Errorf("%w: min_withdraw must not be negative", ErrInvalidConfig)
	case c.ExchangeRate.IsNegative():
		return fmt.Errorf("%w: exchange_rate must not be negative", ErrInvalidConfig)
	}
	return nil
}
