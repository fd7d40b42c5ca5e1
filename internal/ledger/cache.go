package ledger

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// balanceCache is an expiring LRU of account reads keyed by subject id.
// Every write path invalidates the subjects it touched before acknowledging.
type balanceCache struct {
	lru *expirable.LRU[string, domain.Account]
}

func newBalanceCache(size int, ttl time.Duration) *balanceCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &balanceCache{
		lru: expirable.NewLRU[string, domain.Account](size, nil, ttl),
	}
}

func (c *balanceCache) Get(subjectID string) (domain.Account, bool) {
	acct, ok := c.lru.Get(subjectID)
	if !ok {
		return domain.Account{}, false
	}
	acct.Referrals = append([]domain.Referral(nil), acct.Referrals...)
	return acct, true
}

func (c *balanceCache) Set(acct domain.Account) {
	acct.Referrals = append([]domain.Referral(nil), acct.Referrals...)
	c.lru.Add(acct.SubjectID, acct)
}

func (c *balanceCache) Invalidate(subjectIDs ...string) {
	for _, id := range subjectIDs {
		c.lru.Remove(id)
	}
}
