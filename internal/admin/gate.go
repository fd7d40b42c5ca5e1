// Package admin gates privileged economy config changes behind an access code.
//
// The code is compared exactly and in constant time. It is a weak gate: the
// backend checks the same code again on every write.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/configstore"
	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/logger"
)

// ErrAccessDenied is the single error for any code mismatch
var ErrAccessDenied = domain.ErrAccessDenied

// Gate checks access codes of a fixed length
type Gate struct {
	code  []byte
	store *configstore.Store
	bus   event.Bus
}

// NewGate creates a gate for code. bus may be nil.
func NewGate(code string, store *configstore.Store, bus event.Bus) (*Gate, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: access code must not be empty", domain.ErrInvalidInput)
	}
	return &Gate{code: []byte(code), store: store, bus: bus}, nil
}

// Enter returns a capability when code matches exactly
func (g *Gate) Enter(code string) (*Capability, error) {
	if len(code) != len(g.code) || subtle.ConstantTimeCompare([]byte(code), g.code) != 1 {
		return nil, ErrAccessDenied
	}
	return &Capability{code: code, store: g.store, bus: g.bus}, nil
}

// Capability authorises config mutations for one holder
type Capability struct {
	code  string
	store *configstore.Store
	bus   event.Bus
}

// MutateConfig writes next through the config store and returns the acknowledged config
func (c *Capability) MutateConfig(ctx context.Context, next domain.EconomyConfig) (domain.EconomyConfig, error) {
	cfg, err := c.store.Mutate(ctx, c.code, next)
	if err != nil {
		return cfg, err
	}
	if c.bus != nil {
		if err := c.bus.Publish(ctx, event.NewConfigChangedEvent(cfg)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
		}
	}
	return cfg, nil
}

// Patch applies the non-nil fields of patch on top of the current config and writes the result.
// Any negative or non-finite field rejects the whole patch, and so does a
// result with a zero rate or duration.
func (c *Capability) Patch(ctx context.Context, patch domain.EconomyConfigUpdate) (domain.EconomyConfig, error) {
	next := c.store.Current()

	apply := func(name string, v *float64, dst *decimal.Decimal) error {
		if v == nil {
			return nil
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidConfig, name)
		}
		*dst = decimal.NewFromFloat(*v)
		return nil
	}

	if err := apply(configstore.FieldAccrualRate, patch.AccrualRate, &next.AccrualRate); err != nil {
		return next, err
	}
	if v := patch.SessionSeconds; v != nil {
		if math.IsNaN(*v) || *v < 0 || *v != math.Trunc(*v) || *v > float64(math.MaxInt32) {
			return next, fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidConfig, configstore.FieldSessionDuration)
		}
		next.SessionDuration = time.Duration(*v) * time.Second
	}
	if err := apply(configstore.FieldReferralReward, patch.ReferralReward, &next.ReferralReward); err != nil {
		return next, err
	}
	if err := apply(configstore.FieldMinWithdraw, patch.MinWithdraw, &next.MinWithdraw); err != nil {
		return next, err
	}
	if err := apply(configstore.FieldExchangeRate, patch.ExchangeRate, &next.ExchangeRate); err != nil {
		return next, err
	}

	return c.MutateConfig(ctx, next)
}
