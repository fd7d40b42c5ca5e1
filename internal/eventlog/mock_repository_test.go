package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LogEvent(ctx context.Context, eventType string, subjectID *string, payload, metadata []byte) error {
	args := m.Called(ctx, eventType, subjectID, payload, metadata)
	return args.Error(0)
}

func (m *mockRepository) GetEvents(ctx context.Context, filter Filter) ([]Entry, error) {
	args := m.Called(ctx, filter)
	entries, _ := args.Get(0).([]Entry)
	return entries, args.Error(1)
}

func (m *mockRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
