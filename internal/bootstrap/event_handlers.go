package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GlowMine_Go/internal/config"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/eventlog"
	"github.com/osse101/GlowMine_Go/internal/metrics"
	"github.com/osse101/GlowMine_Go/internal/notify"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus   event.Bus
	Dispatcher worker.Dispatcher
	Config     *config.Config
	EventLog   eventlog.Service // optional
}

// RegisterEventHandlers sets up all event subscribers:
//   - metrics collector (event counts by type)
//   - audit trail (withdrawals and config changes)
//   - withdrawal notifier (Discord when configured, otherwise a no-op)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLog != nil {
		deps.EventLog.Subscribe(deps.EventBus, deps.Dispatcher)
		slog.Info(LogMsgEventLogRegistered)
	}

	var notifier notify.Notifier = notify.Nop{}
	if deps.Config.NotificationsEnabled() {
		dn, err := notify.NewDiscordNotifier(deps.Config.DiscordToken, deps.Config.DiscordChannelID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedCreateNotifier, err)
		}
		notifier = dn
		slog.Info(LogMsgNotifierEnabled, "channel_id", deps.Config.DiscordChannelID)
	} else {
		slog.Info(LogMsgNotifierDisabled)
	}
	notify.Subscribe(deps.EventBus, notifier, deps.Dispatcher)

	return nil
}
