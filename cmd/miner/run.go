package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/reconcile"
	"github.com/osse101/GlowMine_Go/internal/scheduler"
	"github.com/osse101/GlowMine_Go/internal/session"
)

var autoRestart bool

func init() {
	runCmd.Flags().BoolVar(&autoRestart, "auto", false, "start a new session as soon as the previous one is settled")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Mine in the foreground until interrupted",
	Long: `Run the client in the foreground: show the session countdown, submit rewards
when sessions finish, retry parked rewards and refresh the economy config on a schedule.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.close()

		out := &lockedWriter{w: cmd.OutOrStdout()}
		subscribeOutcomes(a.bus, out)

		a.sync(ctx)
		if err := a.coord.Resume(ctx); err != nil {
			fmt.Fprintln(out, describeError(err))
		}
		if _, err := a.coord.RetryPending(ctx); err != nil {
			fmt.Fprintln(out, describeError(err))
		}
		if _, _, err := a.coord.RetryWithdrawal(ctx); err != nil {
			fmt.Fprintln(out, describeError(err))
		}

		sched := scheduler.New(a.pool)
		sched.Schedule("pending-sweep", a.cfg.PendingSweepInterval, reconcile.SweepJob(a.coord))
		sched.Schedule("config-refresh", a.cfg.ConfigRefreshInterval, reconcile.ConfigRefreshJob(a.coord))
		defer sched.Stop()

		return pollLoop(ctx, a, out)
	},
}

func pollLoop(ctx context.Context, a *app, out io.Writer) error {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	last := session.State(-1)
	for {
		now := time.Now()
		p := a.coord.Poll(ctx, now)

		if p.State == session.Idle && autoRestart {
			if err := a.coord.StartSession(ctx, now); err == nil {
				p = a.coord.Progress(now)
			}
		}

		switch {
		case p.State == session.Active:
			fmt.Fprintf(out, "\rMining %s left  ", countdown(p.Remaining))
		case p.State != last && p.State == session.Resolving:
			fmt.Fprintln(out, "\nSession finished; submitting reward")
		case p.State != last && p.State == session.Idle:
			fmt.Fprintf(out, "\nIdle. Balance: %s. Run `miner start` or pass --auto.\n", amount(a.coord.User().Balance))
		}
		last = p.State

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-ticker.C:
		}
	}
}

// subscribeOutcomes prints reward outcomes as they arrive from workers
func subscribeOutcomes(bus event.Bus, out io.Writer) {
	announce := func(verb string) event.Handler {
		return func(_ context.Context, evt event.Event) error {
			p, ok := evt.Payload.(event.RewardOutcomePayloadV1)
			if !ok {
				return nil
			}
			line := fmt.Sprintf("\n%s %s reward %s (%s)", verb, p.RewardKind, amount(p.Amount), p.Reason)
			if p.Cause != "" {
				line += ": " + p.Cause
			}
			fmt.Fprintln(out, line)
			return nil
		}
	}
	bus.Subscribe(event.OutcomeApplied, announce("Applied"))
	bus.Subscribe(event.OutcomeAlreadyApplied, announce("Already applied"))
	bus.Subscribe(event.OutcomeParked, announce("Parked"))
	bus.Subscribe(event.OutcomeRejected, announce("Rejected"))
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
