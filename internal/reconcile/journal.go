package reconcile

import (
	"context"
	"sync"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// memoryJournal is the WithdrawalJournal used when none is configured
type memoryJournal struct {
	mu  sync.Mutex
	req *domain.WithdrawalRequest
}

func (j *memoryJournal) SaveWithdrawal(_ context.Context, req *domain.WithdrawalRequest) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if req == nil {
		j.req = nil
		return nil
	}
	cp := *req
	j.req = &cp
	return nil
}

func (j *memoryJournal) LoadWithdrawal(context.Context) (*domain.WithdrawalRequest, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.req == nil {
		return nil, nil
	}
	cp := *j.req
	return &cp, nil
}
