package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

func TestService_LogsWithdrawalRequested(t *testing.T) {
	repo := new(mockRepository)
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus, worker.Inline{})

	var payload []byte
	repo.On("LogEvent", mock.Anything, string(event.WithdrawalRequested),
		mock.MatchedBy(func(id *string) bool { return id != nil && *id == "alice" }),
		mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { payload = args.Get(3).([]byte) }).
		Return(nil)

	err := bus.Publish(context.Background(), event.NewWithdrawalRequestedEvent(domain.WithdrawalRequest{
		RequestID: "w-1",
		SubjectID: "alice",
		Amount:    decimal.NewFromInt(100),
		Address:   "addr-0123456789",
	}))
	require.NoError(t, err)

	repo.AssertExpectations(t)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "w-1", decoded["request_id"])
	assert.Equal(t, "100", decoded["amount"])
}

func TestService_LogsConfigChangedWithoutSubject(t *testing.T) {
	repo := new(mockRepository)
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus, worker.Inline{})

	repo.On("LogEvent", mock.Anything, string(event.ConfigChanged), (*string)(nil), mock.Anything, mock.Anything).
		Return(nil)

	require.NoError(t, bus.Publish(context.Background(), event.NewConfigChangedEvent(domain.DefaultEconomyConfig())))
	repo.AssertExpectations(t)
}

func TestService_IgnoresUnloggedTypes(t *testing.T) {
	repo := new(mockRepository)
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus, worker.Inline{})

	require.NoError(t, bus.Publish(context.Background(), event.NewBalanceSyncedEvent(domain.Account{SubjectID: "alice"})))
	repo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Events_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"unset", 0, DefaultListLimit},
		{"too large", 10_000, DefaultListLimit},
		{"within range", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("GetEvents", mock.Anything, Filter{SubjectID: "alice", Limit: tt.want}).Return([]Entry{}, nil)

			_, err := NewService(repo).Events(context.Background(), Filter{SubjectID: "alice", Limit: tt.limit})
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_CleanupOldEvents(t *testing.T) {
	repo := new(mockRepository)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &service{repo: repo, now: func() time.Time { return now }}

	repo.On("CleanupOldEvents", mock.Anything, now.Add(-72*time.Hour)).Return(int64(3), nil)

	n, err := svc.CleanupOldEvents(context.Background(), 72*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCleanupJob(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CleanupOldEvents", mock.Anything, mock.Anything).Return(int64(100), nil).Once()
	assert.NoError(t, CleanupJob(NewService(repo), time.Hour).Process(context.Background()))

	repo.On("CleanupOldEvents", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()
	assert.Error(t, CleanupJob(NewService(repo), time.Hour).Process(context.Background()))
	repo.AssertExpectations(t)
}
