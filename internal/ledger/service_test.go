package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
	"github.com/osse101/GlowMine_Go/mocks"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func setup(t *testing.T) (*mocks.MockRepositoryLedger, *mocks.MockRepositoryLedgerTx, *event.MemoryBus, Service) {
	repo := mocks.NewMockRepositoryLedger(t)
	tx := mocks.NewMockRepositoryLedgerTx(t)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	bus := event.NewMemoryBus()
	svc := NewService(repo, bus, Options{CacheSize: 16, CacheTTL: time.Minute, Now: func() time.Time { return fixedNow }})
	return repo, tx, bus, svc
}

func defaultConfig() *domain.EconomyConfig {
	cfg := domain.DefaultEconomyConfig()
	return &cfg
}

func TestCredit_Applied(t *testing.T) {
	repo, tx, _, svc := setup(t)
	ctx := context.Background()

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "alice").Return(decimal.NewFromInt(100), nil)
	tx.On("InsertEntry", mock.Anything, "alice", "mining:1700000000000", decEq("600")).Return(true, nil)
	tx.On("AdjustBalance", mock.Anything, "alice", decEq("600")).Return(decimal.NewFromInt(700), nil)
	tx.On("Commit", mock.Anything).Return(nil)

	res, err := svc.Credit(ctx, domain.RewardEvent{SubjectID: "alice", Amount: decimal.NewFromInt(600), Reason: "mining:1700000000000"})

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.False(t, res.Duplicate)
	assert.Equal(t, "700", res.Balance.String())
}

func TestCredit_DuplicateLeavesBalance(t *testing.T) {
	repo, tx, _, svc := setup(t)
	ctx := context.Background()

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "alice").Return(decimal.NewFromInt(700), nil)
	tx.On("InsertEntry", mock.Anything, "alice", "task:t1", decEq("1000")).Return(false, nil)

	res, err := svc.Credit(ctx, domain.RewardEvent{SubjectID: "alice", Amount: decimal.NewFromInt(1000), Reason: "task:t1"})

	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.False(t, res.Applied)
	assert.Equal(t, "700", res.Balance.String())
	tx.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCredit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		ev      domain.RewardEvent
		wantErr error
	}{
		{"zero amount", domain.RewardEvent{SubjectID: "a", Amount: decimal.Zero, Reason: "task:t1"}, domain.ErrInvalidAmount},
		{"negative amount", domain.RewardEvent{SubjectID: "a", Amount: decimal.NewFromInt(-5), Reason: "task:t1"}, domain.ErrInvalidAmount},
		{"sub-cent amount", domain.RewardEvent{SubjectID: "a", Amount: decimal.RequireFromString("1.005"), Reason: "task:t1"}, domain.ErrInvalidAmount},
		{"missing subject", domain.RewardEvent{Amount: decimal.NewFromInt(5), Reason: "task:t1"}, domain.ErrInvalidInput},
		{"no separator", domain.RewardEvent{SubjectID: "a", Amount: decimal.NewFromInt(5), Reason: "bonus"}, domain.ErrInvalidReason},
		{"empty instance", domain.RewardEvent{SubjectID: "a", Amount: decimal.NewFromInt(5), Reason: "mining:"}, domain.ErrInvalidReason},
		{"referral is ledger-only", domain.RewardEvent{SubjectID: "a", Amount: decimal.NewFromInt(5), Reason: "referral:b"}, domain.ErrInvalidReason},
		{"withdraw is ledger-only", domain.RewardEvent{SubjectID: "a", Amount: decimal.NewFromInt(5), Reason: "withdraw:r"}, domain.ErrInvalidReason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, _, svc := setup(t)

			_, err := svc.Credit(context.Background(), tt.ev)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "BeginTx", mock.Anything)
		})
	}
}

func TestCredit_UnknownSubject(t *testing.T) {
	repo, tx, _, svc := setup(t)

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "ghost").Return(decimal.Zero, domain.ErrSubjectNotFound)

	_, err := svc.Credit(context.Background(), domain.RewardEvent{SubjectID: "ghost", Amount: decimal.NewFromInt(5), Reason: "task:t1"})
	assert.ErrorIs(t, err, domain.ErrSubjectNotFound)
}

func TestBalance_CachedUntilWrite(t *testing.T) {
	repo, tx, _, svc := setup(t)
	ctx := context.Background()

	repo.On("GetAccount", mock.Anything, "alice").
		Return(&domain.Account{SubjectID: "alice", Balance: decimal.NewFromInt(100), Referrals: []domain.Referral{}}, nil).Once()

	first, err := svc.Balance(ctx, "alice")
	require.NoError(t, err)
	second, err := svc.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.Balance.String(), second.Balance.String())
	repo.AssertNumberOfCalls(t, "GetAccount", 1)

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "alice").Return(decimal.NewFromInt(100), nil)
	tx.On("InsertEntry", mock.Anything, "alice", "task:t1", decEq("1000")).Return(true, nil)
	tx.On("AdjustBalance", mock.Anything, "alice", decEq("1000")).Return(decimal.NewFromInt(1100), nil)
	tx.On("Commit", mock.Anything).Return(nil)
	_, err = svc.Credit(ctx, domain.RewardEvent{SubjectID: "alice", Amount: decimal.NewFromInt(1000), Reason: "task:t1"})
	require.NoError(t, err)

	repo.On("GetAccount", mock.Anything, "alice").
		Return(&domain.Account{SubjectID: "alice", Balance: decimal.NewFromInt(1100), Referrals: []domain.Referral{}}, nil).Once()
	third, err := svc.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1100", third.Balance.String())
	repo.AssertNumberOfCalls(t, "GetAccount", 2)
}

func TestRegister_CreditsReferrerOnce(t *testing.T) {
	repo, tx, _, svc := setup(t)

	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateSubject", mock.Anything, "bob", "Bob").Return(true, nil)
	tx.On("SubjectExists", mock.Anything, "alice").Return(true, nil)
	tx.On("InsertEntry", mock.Anything, "alice", "referral:bob", decEq("500")).Return(true, nil)
	tx.On("AdjustBalance", mock.Anything, "alice", decEq("500")).Return(decimal.NewFromInt(500), nil)
	tx.On("InsertReferral", mock.Anything, "bob", "alice", decEq("500")).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	repo.On("GetAccount", mock.Anything, "bob").
		Return(&domain.Account{SubjectID: "bob", Balance: decimal.Zero, Referrals: []domain.Referral{}}, nil)

	acct, err := svc.Register(context.Background(), "bob", " Bob ", "alice")

	require.NoError(t, err)
	assert.Equal(t, "bob", acct.SubjectID)
	assert.True(t, acct.Balance.IsZero())
}

func TestRegister_ExistingSubjectSkipsReferral(t *testing.T) {
	repo, tx, _, svc := setup(t)

	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateSubject", mock.Anything, "bob", "").Return(false, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	repo.On("GetAccount", mock.Anything, "bob").
		Return(&domain.Account{SubjectID: "bob", Balance: decimal.NewFromInt(42), Referrals: []domain.Referral{}}, nil)

	acct, err := svc.Register(context.Background(), "bob", "", "alice")

	require.NoError(t, err)
	assert.Equal(t, "42", acct.Balance.String())
	tx.AssertNotCalled(t, "SubjectExists", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "InsertEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_SelfReferralIgnored(t *testing.T) {
	repo, tx, _, svc := setup(t)

	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateSubject", mock.Anything, "bob", "").Return(true, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	repo.On("GetAccount", mock.Anything, "bob").
		Return(&domain.Account{SubjectID: "bob", Balance: decimal.Zero, Referrals: []domain.Referral{}}, nil)

	_, err := svc.Register(context.Background(), "bob", "", "bob")

	require.NoError(t, err)
	tx.AssertNotCalled(t, "SubjectExists", mock.Anything, mock.Anything)
}

func TestRegister_UnknownReferrerIgnored(t *testing.T) {
	repo, tx, _, svc := setup(t)

	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("CreateSubject", mock.Anything, "bob", "").Return(true, nil)
	tx.On("SubjectExists", mock.Anything, "nobody").Return(false, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	repo.On("GetAccount", mock.Anything, "bob").
		Return(&domain.Account{SubjectID: "bob", Balance: decimal.Zero, Referrals: []domain.Referral{}}, nil)

	_, err := svc.Register(context.Background(), "bob", "", "nobody")

	require.NoError(t, err)
	tx.AssertNotCalled(t, "InsertReferral", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_RequiresSubject(t *testing.T) {
	repo, _, _, svc := setup(t)

	_, err := svc.Register(context.Background(), "  ", "x", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func withdrawalRequest(amount int64) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		RequestID: "req-1",
		SubjectID: "alice",
		Amount:    decimal.NewFromInt(amount),
		Address:   "TXYZ1234567890",
	}
}

func TestWithdraw_Accepted(t *testing.T) {
	repo, tx, bus, svc := setup(t)
	var published []event.Event
	bus.Subscribe(event.WithdrawalRequested, func(_ context.Context, e event.Event) error {
		published = append(published, e)
		return nil
	})

	repo.On("GetWithdrawal", mock.Anything, "req-1").Return(nil, domain.ErrWithdrawalNotFound)
	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "alice").Return(decimal.NewFromInt(20000), nil)
	tx.On("InsertWithdrawal", mock.Anything, mock.Anything, mock.MatchedBy(func(r domain.WithdrawalReceipt) bool {
		return r.Accepted && r.Balance.Equal(decimal.NewFromInt(5000)) && r.CreatedAt.Equal(fixedNow)
	})).Return(true, nil)
	tx.On("InsertEntry", mock.Anything, "alice", "withdraw:req-1", decEq("-15000")).Return(true, nil)
	tx.On("AdjustBalance", mock.Anything, "alice", decEq("-15000")).Return(decimal.NewFromInt(5000), nil)
	tx.On("Commit", mock.Anything).Return(nil)

	receipt, err := svc.Withdraw(context.Background(), withdrawalRequest(15000))

	require.NoError(t, err)
	assert.True(t, receipt.Accepted)
	assert.Equal(t, "req-1", receipt.RequestID)
	assert.Equal(t, "5000", receipt.Balance.String())
	require.Len(t, published, 1)
}

func TestWithdraw_RejectionIsRecorded(t *testing.T) {
	repo, tx, bus, svc := setup(t)
	bus.Subscribe(event.WithdrawalRequested, func(context.Context, event.Event) error {
		t.Error("rejected withdrawals must not be announced")
		return nil
	})

	repo.On("GetWithdrawal", mock.Anything, "req-1").Return(nil, domain.ErrWithdrawalNotFound)
	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "alice").Return(decimal.NewFromInt(5000), nil)
	tx.On("InsertWithdrawal", mock.Anything, mock.Anything, mock.MatchedBy(func(r domain.WithdrawalReceipt) bool {
		return !r.Accepted && r.Reason == domain.WithdrawRejectInsufficientBalance
	})).Return(true, nil)
	tx.On("Commit", mock.Anything).Return(nil)

	receipt, err := svc.Withdraw(context.Background(), withdrawalRequest(15000))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWithdrawRejected)
	var verr *withdrawal.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.WithdrawRejectInsufficientBalance, verr.Reason)
	assert.False(t, receipt.Accepted)
	assert.Equal(t, "5000", receipt.Balance.String())
	tx.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestWithdraw_ReplayReturnsStoredReceipt(t *testing.T) {
	repo, _, _, svc := setup(t)

	stored := &domain.WithdrawalReceipt{RequestID: "req-1", Accepted: true, Balance: decimal.NewFromInt(5000), CreatedAt: fixedNow}
	repo.On("GetWithdrawal", mock.Anything, "req-1").Return(stored, nil)

	receipt, err := svc.Withdraw(context.Background(), withdrawalRequest(15000))

	require.NoError(t, err)
	assert.True(t, receipt.Accepted)
	assert.Equal(t, "5000", receipt.Balance.String())
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestWithdraw_ReplayOfRejection(t *testing.T) {
	repo, _, _, svc := setup(t)

	stored := &domain.WithdrawalReceipt{RequestID: "req-1", Reason: domain.WithdrawRejectBelowMinimum, CreatedAt: fixedNow}
	repo.On("GetWithdrawal", mock.Anything, "req-1").Return(stored, nil)

	receipt, err := svc.Withdraw(context.Background(), withdrawalRequest(15000))

	var verr *withdrawal.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.WithdrawRejectBelowMinimum, verr.Reason)
	assert.False(t, receipt.Accepted)
}

func TestWithdraw_ConcurrentSameRequestID(t *testing.T) {
	repo, tx, _, svc := setup(t)

	stored := &domain.WithdrawalReceipt{RequestID: "req-1", Accepted: true, Balance: decimal.NewFromInt(5000), CreatedAt: fixedNow}
	repo.On("GetWithdrawal", mock.Anything, "req-1").Return(nil, domain.ErrWithdrawalNotFound).Once()
	repo.On("GetEconomyConfig", mock.Anything).Return(defaultConfig(), nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetBalanceForUpdate", mock.Anything, "alice").Return(decimal.NewFromInt(5000), nil)
	tx.On("InsertWithdrawal", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetWithdrawal", mock.Anything, "req-1").Return(stored, nil).Once()

	receipt, err := svc.Withdraw(context.Background(), withdrawalRequest(15000))

	require.NoError(t, err)
	assert.True(t, receipt.Accepted)
	tx.AssertNotCalled(t, "InsertEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestWithdraw_RequiresRequestID(t *testing.T) {
	repo, _, _, svc := setup(t)

	req := withdrawalRequest(15000)
	req.RequestID = ""
	_, err := svc.Withdraw(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetWithdrawal", mock.Anything, mock.Anything)
}

func TestPutConfig(t *testing.T) {
	t.Run("invalid config never reaches the store", func(t *testing.T) {
		repo, _, _, svc := setup(t)
		cfg := domain.DefaultEconomyConfig()
		cfg.AccrualRate = decimal.NewFromInt(-1)

		_, err := svc.PutConfig(context.Background(), cfg)

		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		repo.AssertNotCalled(t, "UpdateEconomyConfig", mock.Anything, mock.Anything)
	})

	t.Run("zero rate or duration never reaches the store", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		zeroRate := domain.DefaultEconomyConfig()
		zeroRate.AccrualRate = decimal.Zero
		_, err := svc.PutConfig(context.Background(), zeroRate)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)

		zeroDuration := domain.DefaultEconomyConfig()
		zeroDuration.SessionDuration = 0
		_, err = svc.PutConfig(context.Background(), zeroDuration)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)

		repo.AssertNotCalled(t, "UpdateEconomyConfig", mock.Anything, mock.Anything)
	})

	t.Run("valid config is stored and echoed", func(t *testing.T) {
		repo, _, bus, svc := setup(t)
		changed := 0
		bus.Subscribe(event.ConfigChanged, func(context.Context, event.Event) error {
			changed++
			return nil
		})

		cfg := domain.DefaultEconomyConfig()
		cfg.SessionDuration = 90 * time.Second
		repo.On("UpdateEconomyConfig", mock.Anything, cfg).Return(nil)
		repo.On("GetEconomyConfig", mock.Anything).Return(&cfg, nil)

		got, err := svc.PutConfig(context.Background(), cfg)

		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, got.SessionDuration)
		assert.Equal(t, 1, changed)
	})
}
