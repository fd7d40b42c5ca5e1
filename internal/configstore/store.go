// Package configstore holds the economy config supplied by the backend.
//
// Each field is merged independently: a missing, non-numeric, negative or
// non-finite value keeps the last-known-good value for that field. The accrual
// rate and the session duration also fall back on zero, since either would
// silently turn every session into a zero reward.
package configstore

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/metrics"
)

// Source is the backend boundary the store reads from and writes through
type Source interface {
	GetConfig(ctx context.Context) (domain.EconomyConfigUpdate, error)
	PutConfig(ctx context.Context, adminKey string, cfg domain.EconomyConfig) (domain.EconomyConfigUpdate, error)
}

// Store is the single owner of the current economy config
type Store struct {
	source Source

	mu      sync.RWMutex
	current domain.EconomyConfig
}

// New creates a store seeded with initial as the last-known-good config
func New(source Source, initial domain.EconomyConfig) *Store {
	return &Store{source: source, current: initial}
}

// Current returns the current config
func (s *Store) Current() domain.EconomyConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Merge applies the valid fields of update and returns the resulting config
// together with the names of the fields that fell back.
func (s *Store) Merge(update domain.EconomyConfigUpdate) (domain.EconomyConfig, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	var fallbacks []string

	mergeDecimal := func(field string, v *float64, dst *decimal.Decimal) {
		if !usable(v) {
			fallbacks = append(fallbacks, field)
			return
		}
		*dst = decimal.NewFromFloat(*v)
	}

	if usable(update.AccrualRate) && *update.AccrualRate > 0 {
		next.AccrualRate = decimal.NewFromFloat(*update.AccrualRate)
	} else {
		fallbacks = append(fallbacks, FieldAccrualRate)
	}
	if usable(update.SessionSeconds) && *update.SessionSeconds >= minSessionSeconds && *update.SessionSeconds <= maxSessionSeconds {
		next.SessionDuration = time.Duration(math.Floor(*update.SessionSeconds)) * time.Second
	} else {
		fallbacks = append(fallbacks, FieldSessionDuration)
	}
	mergeDecimal(FieldReferralReward, update.ReferralReward, &next.ReferralReward)
	mergeDecimal(FieldMinWithdraw, update.MinWithdraw, &next.MinWithdraw)
	mergeDecimal(FieldExchangeRate, update.ExchangeRate, &next.ExchangeRate)

	s.current = next
	return next, fallbacks
}

// Restore replaces the current config with a persisted snapshot, if it is valid
func (s *Store) Restore(cfg domain.EconomyConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return nil
}

// Refresh fetches the config from the backend and merges it.
// On failure the current config is kept and the error returned.
func (s *Store) Refresh(ctx context.Context) (domain.EconomyConfig, error) {
	update, err := s.source.GetConfig(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
		return s.Current(), fmt.Errorf("failed to refresh config: %w", err)
	}

	cfg, fallbacks := s.Merge(update)
	s.reportFallbacks(ctx, fallbacks)
	return cfg, nil
}

// Mutate writes next through the backend with the privileged key and adopts the echo.
// Echoed fields that are malformed keep their last-known-good values.
func (s *Store) Mutate(ctx context.Context, adminKey string, next domain.EconomyConfig) (domain.EconomyConfig, error) {
	if err := next.Validate(); err != nil {
		return s.Current(), err
	}

	echo, err := s.source.PutConfig(ctx, adminKey, next)
	if err != nil {
		return s.Current(), fmt.Errorf("failed to write config: %w", err)
	}

	cfg, fallbacks := s.Merge(echo)
	s.reportFallbacks(ctx, fallbacks)
	logger.FromContext(ctx).Info(LogMsgConfigMutated, "accrual_rate", cfg.AccrualRate.String(), "session_seconds", cfg.SessionSeconds())
	return cfg, nil
}

func (s *Store) reportFallbacks(ctx context.Context, fields []string) {
	for _, f := range fields {
		metrics.ConfigFallbacks.WithLabelValues(f).Inc()
	}
	if len(fields) > 0 {
		logger.FromContext(ctx).Warn(LogMsgFieldFallback, "fields", fields)
	}
}

// maxSessionSeconds keeps the duration representable as a time.Duration
const (
	minSessionSeconds = float64(domain.MinSessionDuration / time.Second)
	maxSessionSeconds = float64(math.MaxInt64 / int64(time.Second))
)

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}
