// Package accrual computes the reward owed for a resolved mining session.
package accrual

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/session"
)

// ErrIncompleteSession is returned when the reward is requested before the session elapsed
var ErrIncompleteSession = domain.ErrSessionIncomplete

// Calculator turns a frozen resolution into a credit amount.
// Results are rounded half-to-even at Scale decimal places.
type Calculator struct {
	Scale int32
}

// NewCalculator returns a calculator rounding to the smallest credit unit
func NewCalculator() Calculator {
	return Calculator{Scale: domain.CreditScale}
}

// Reward returns Duration x Rate for a session that ran for elapsed.
// Time past the duration is not paid.
func (c Calculator) Reward(res session.Resolution, elapsed time.Duration) (decimal.Decimal, error) {
	if elapsed < res.Duration {
		return decimal.Zero, ErrIncompleteSession
	}
	return c.amount(res.Rate, res.Duration), nil
}

// Accrued returns the reward earned so far by a session that is still running,
// capped at the full session. Used for display only.
func (c Calculator) Accrued(rate decimal.Decimal, duration, elapsed time.Duration) decimal.Decimal {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > duration {
		elapsed = duration
	}
	return c.amount(rate, elapsed)
}

func (c Calculator) amount(rate decimal.Decimal, d time.Duration) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(d / time.Second))
	return seconds.Mul(rate).RoundBank(c.Scale)
}
