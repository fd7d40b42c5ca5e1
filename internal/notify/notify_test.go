package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/worker"
	"github.com/osse101/GlowMine_Go/mocks"
)

type fakeSender struct {
	mu      sync.Mutex
	channel string
	embeds  []*discordgo.MessageEmbed
	err     error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.channel = channelID
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{ID: "m1"}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []event.WithdrawalRequestedPayloadV1
	err  error
}

func (r *recordingNotifier) NotifyWithdrawal(_ context.Context, w event.WithdrawalRequestedPayloadV1) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, w)
	return r.err
}

type refusingDispatcher struct{}

func (refusingDispatcher) Enqueue(worker.Job) error { return errors.New("queue full") }

func samplePayload() event.WithdrawalRequestedPayloadV1 {
	return event.WithdrawalRequestedPayloadV1{
		RequestID: "req-1",
		SubjectID: "alice",
		Amount:    decimal.NewFromInt(15000),
		Address:   "TXYZ1234567890",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Unix(),
	}
}

func TestDiscordNotifier_SendsEmbed(t *testing.T) {
	sender := &fakeSender{}
	n := &DiscordNotifier{session: sender, channelID: "chan-42"}

	require.NoError(t, n.NotifyWithdrawal(context.Background(), samplePayload()))

	require.Len(t, sender.embeds, 1)
	assert.Equal(t, "chan-42", sender.channel)
	embed := sender.embeds[0]
	assert.Equal(t, EmbedTitleWithdrawal, embed.Title)
	assert.Contains(t, embed.Description, "alice")
	assert.Contains(t, embed.Description, "15000.00")
	assert.Equal(t, "2026-01-02T03:04:05Z", embed.Timestamp)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "`TXYZ1234567890`", embed.Fields[1].Value)
}

func TestDiscordNotifier_PropagatesError(t *testing.T) {
	n := &DiscordNotifier{session: &fakeSender{err: errors.New("403 missing access")}, channelID: "c"}

	err := n.NotifyWithdrawal(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing access")
}

func TestSubscribe_DeliversWithdrawals(t *testing.T) {
	bus := event.NewMemoryBus()
	n := mocks.NewMockNotifier(t)
	n.On("NotifyWithdrawal", mock.Anything, mock.MatchedBy(func(w event.WithdrawalRequestedPayloadV1) bool {
		return w.RequestID == "req-9" && w.Address == "ADDR-0123456789"
	})).Return(nil).Once()
	Subscribe(bus, n, worker.Inline{})

	req := domain.WithdrawalRequest{RequestID: "req-9", SubjectID: "bob", Amount: decimal.NewFromInt(12000), Address: "ADDR-0123456789"}
	require.NoError(t, bus.Publish(context.Background(), event.NewWithdrawalRequestedEvent(req)))
}

func TestSubscribe_FailuresDoNotReachPublisher(t *testing.T) {
	bus := event.NewMemoryBus()
	Subscribe(bus, &recordingNotifier{err: errors.New("discord down")}, worker.Inline{})
	Subscribe(bus, Nop{}, refusingDispatcher{})

	req := domain.WithdrawalRequest{RequestID: "req-10", SubjectID: "bob", Amount: decimal.NewFromInt(12000), Address: "ADDR-0123456789"}
	assert.NoError(t, bus.Publish(context.Background(), event.NewWithdrawalRequestedEvent(req)))
}
