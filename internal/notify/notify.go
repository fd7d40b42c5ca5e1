// Package notify announces accepted withdrawals to an operator channel.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/metrics"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// Notifier delivers a withdrawal announcement
type Notifier interface {
	NotifyWithdrawal(ctx context.Context, w event.WithdrawalRequestedPayloadV1) error
}

// Nop drops every notification
type Nop struct{}

func (Nop) NotifyWithdrawal(context.Context, event.WithdrawalRequestedPayloadV1) error { return nil }

// embedSender is the part of *discordgo.Session the notifier uses
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts withdrawal embeds to a Discord channel
type DiscordNotifier struct {
	session   embedSender
	channelID string
}

// NewDiscordNotifier creates a bot session for token. No gateway connection is opened;
// messages go through the REST API only.
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordNotifier{session: s, channelID: channelID}, nil
}

// NotifyWithdrawal posts an embed describing the withdrawal
func (n *DiscordNotifier) NotifyWithdrawal(ctx context.Context, w event.WithdrawalRequestedPayloadV1) error {
	embed := &discordgo.MessageEmbed{
		Title:       EmbedTitleWithdrawal,
		Description: fmt.Sprintf("Subject **%s** requested a payout of **%s**.", w.SubjectID, w.Amount.StringFixed(2)),
		Color:       embedColorWithdrawal,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Amount", Value: w.Amount.StringFixed(2), Inline: true},
			{Name: "Address", Value: "`" + w.Address + "`", Inline: true},
			{Name: "Request", Value: w.RequestID, Inline: false},
		},
		Timestamp: time.Unix(w.Timestamp, 0).UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: EmbedFooter,
		},
	}

	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send withdrawal notification: %w", err)
	}
	return nil
}

// Subscribe hands every WithdrawalRequested event on bus to the dispatcher so
// the notification is sent off the request path. Failures are logged and counted.
func Subscribe(bus event.Bus, n Notifier, d worker.Dispatcher) {
	bus.Subscribe(event.WithdrawalRequested, func(ctx context.Context, e event.Event) error {
		payload, err := event.DecodePayload[event.WithdrawalRequestedPayloadV1](e.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode withdrawal payload: %w", err)
		}
		requestID := logger.GetRequestID(ctx)

		job := worker.JobFunc(func(jobCtx context.Context) error {
			jobCtx, cancel := context.WithTimeout(logger.WithRequestID(jobCtx, requestID), sendTimeout)
			defer cancel()
			if err := n.NotifyWithdrawal(jobCtx, payload); err != nil {
				metrics.NotificationFailures.Inc()
				logger.FromContext(jobCtx).Warn(LogMsgNotifyFailed, "request_id", payload.RequestID, "error", err)
				return err
			}
			logger.FromContext(jobCtx).Info(LogMsgNotifySent, "request_id", payload.RequestID)
			return nil
		})
		if err := d.Enqueue(job); err != nil {
			metrics.NotificationFailures.Inc()
			slog.Default().Warn(LogMsgNotifyDropped, "request_id", payload.RequestID, "error", err)
		}
		return nil
	})
}
