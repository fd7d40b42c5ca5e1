// Package referral is a read-only mirror of the referral credits held by the ledger.
package referral

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// InvitePrefix is prepended to the subject id to form the invite code
const InvitePrefix = "ref"

// Mirror holds the last referral list returned by the ledger.
// It is only ever replaced wholesale; entries are never edited locally.
type Mirror struct {
	mu      sync.RWMutex
	entries []domain.Referral
}

// NewMirror creates an empty mirror
func NewMirror() *Mirror {
	return &Mirror{}
}

// Replace adopts the authoritative list, newest first
func (m *Mirror) Replace(entries []domain.Referral) {
	cp := append([]domain.Referral(nil), entries...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Date.After(cp[j].Date) })

	m.mu.Lock()
	m.entries = cp
	m.mu.Unlock()
}

// Entries returns a copy of the mirrored referrals
func (m *Mirror) Entries() []domain.Referral {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Referral(nil), m.entries...)
}

// Count returns the number of referrals
func (m *Mirror) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// TotalEarned sums the credits earned from referrals
func (m *Mirror) TotalEarned() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := decimal.Zero
	for _, r := range m.entries {
		total = total.Add(r.Earned)
	}
	return total
}

// InviteCode returns the referral code for subjectID
func InviteCode(subjectID string) string {
	return InvitePrefix + subjectID
}

// InviteLink joins base and the invite code, e.g. "https://t.me/GlowMineBot?start=ref42"
func InviteLink(base, subjectID string) string {
	code := InviteCode(subjectID)
	if base == "" {
		return code
	}
	sep := "?start="
	if strings.Contains(base, "?") {
		sep = "&start="
	}
	return base + sep + code
}

// ParseInviteCode extracts the referrer's subject id from an invite code
func ParseInviteCode(code string) (string, bool) {
	id, ok := strings.CutPrefix(strings.TrimSpace(code), InvitePrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
