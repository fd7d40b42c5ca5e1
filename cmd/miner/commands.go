package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/osse101/GlowMine_Go/internal/admin"
	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/reconcile"
	"github.com/osse101/GlowMine_Go/internal/referral"
	"github.com/osse101/GlowMine_Go/internal/session"
	"github.com/osse101/GlowMine_Go/internal/tasks"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskBeginCmd)
	taskCmd.AddCommand(taskClaimCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(referralsCmd)
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminConfigCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(retryCmd)

	f := adminConfigCmd.Flags()
	f.String("code", "", "admin access code")
	f.Float64("rate", 0, "accrual rate in reward units per second")
	f.Duration("duration", 0, "mining session duration (whole seconds)")
	f.Float64("referral", 0, "referral reward")
	f.Float64("min-withdraw", 0, "minimum withdrawal amount")
	f.Float64("exchange-rate", 0, "reward units per USD")
	_ = adminConfigCmd.MarkFlagRequired("code")
}

// withApp opens the client, syncs with the ledger and runs fn
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()
	a.sync(ctx)
	return fn(ctx, a)
}

// ─── status ────────────────────────────────────────────────────────────────

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show balance, session, tasks and referrals",
	Long:  `Show the account. A session whose countdown has finished is resolved and its reward submitted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			p := a.coord.Poll(ctx, time.Now())
			printStatus(cmd.OutOrStdout(), a.coord.User(), a.coord.Config(), p, a.coord.Referrals())
			return nil
		})
	},
}

// ─── start ─────────────────────────────────────────────────────────────────

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a mining session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			now := time.Now()
			a.coord.Poll(ctx, now)
			if err := a.coord.StartSession(ctx, now); err != nil {
				switch {
				case errors.Is(err, session.ErrSessionActive):
					return fmt.Errorf("a session is already running (%s left)", countdown(a.coord.Progress(now).Remaining))
				case errors.Is(err, reconcile.ErrResolutionPending):
					return fmt.Errorf("the previous reward is still awaiting the ledger; run `miner retry` later")
				}
				return errors.New(describeError(err))
			}
			cfg := a.coord.Config()
			fmt.Fprintf(cmd.OutOrStdout(), "Mining started: %s at %s/s\n",
				countdown(cfg.SessionDuration), cfg.AccrualRate.String())
			return nil
		})
	},
}

// ─── task ──────────────────────────────────────────────────────────────────

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Work on one-shot tasks",
}

var taskBeginCmd = &cobra.Command{
	Use:   "begin TASK_ID",
	Short: "Open a task's verification window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			left, err := a.coord.BeginTask(args[0], time.Now())
			if err != nil {
				return err
			}
			printTaskLink(cmd, a, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Claimable in %s\n", countdown(left))
			return nil
		})
	},
}

var taskClaimCmd = &cobra.Command{
	Use:   "claim TASK_ID",
	Short: "Wait out a task's verification window and claim its reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			id := args[0]
			left, err := a.coord.BeginTask(id, time.Now())
			if err != nil {
				return err
			}
			if left > 0 {
				printTaskLink(cmd, a, id)
				fmt.Fprintf(cmd.OutOrStdout(), "Verifying for %s...\n", countdown(left))
				select {
				case <-time.After(left):
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			err = a.coord.ClaimTask(ctx, id, time.Now())
			switch {
			case errors.Is(err, tasks.ErrAlreadyCompleted):
				return fmt.Errorf("task %s is already completed", id)
			case errors.Is(err, reconcile.ErrParked):
				fmt.Fprintln(cmd.OutOrStdout(), "Ledger unreachable; the reward is saved and will be retried.")
				return nil
			case err != nil:
				return errors.New(describeError(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s claimed. Balance: %s\n", id, amount(a.coord.User().Balance))
			return nil
		})
	},
}

func printTaskLink(cmd *cobra.Command, a *app, id string) {
	u := a.coord.User()
	if i := u.FindTask(id); i >= 0 && u.Tasks[i].Link != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Open: %s\n", u.Tasks[i].Link)
	}
}

// ─── withdraw ──────────────────────────────────────────────────────────────

var withdrawCmd = &cobra.Command{
	Use:   "withdraw AMOUNT ADDRESS",
	Short: "Request a payout",
	Long: `Request a payout. When the ledger's answer to an earlier request was lost,
asking again for the same amount and address replays it under the same request id.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amt, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			receipt, err := a.coord.RequestWithdrawal(ctx, amt, args[1])
			if err != nil {
				return errors.New(describeError(err))
			}
			cfg := a.coord.Config()
			fmt.Fprintf(cmd.OutOrStdout(), "Withdrawal %s accepted: %s (%s). Balance: %s\n",
				receipt.RequestID, amount(amt), usd(cfg.USDValue(amt)), amount(receipt.Balance))
			return nil
		})
	},
}

// ─── referrals ─────────────────────────────────────────────────────────────

var referralsCmd = &cobra.Command{
	Use:   "referrals",
	Short: "Show referral earnings and the invite link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			refs := a.coord.Referrals()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Invite link: %s\n", referral.InviteLink(a.cfg.InviteBaseURL, a.cfg.SubjectID))
			fmt.Fprintf(out, "Referrals:   %d, earned %s\n", refs.Count(), amount(refs.TotalEarned()))
			for _, r := range refs.Entries() {
				fmt.Fprintf(out, "  %-20s %10s  %s\n", r.Username, amount(r.Earned), r.Date.Format(time.DateOnly))
			}
			return nil
		})
	},
}

// ─── admin ─────────────────────────────────────────────────────────────────

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Privileged operations",
}

var adminConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Change the economy config",
	Long:  `Change the economy config. Only the flags given are changed; the backend checks the code again.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := configPatch(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			gate, err := admin.NewGate(a.cfg.AdminAccessCode, a.configs, a.bus)
			if err != nil {
				return fmt.Errorf("admin_access_code is not configured")
			}
			code, _ := cmd.Flags().GetString("code")
			capability, err := gate.Enter(code)
			if err != nil {
				return err
			}
			cfg, err := capability.Patch(ctx, patch)
			if err != nil {
				return errors.New(describeError(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config updated: rate %s/s, session %s, referral %s, min withdraw %s, %s per USD\n",
				cfg.AccrualRate.String(), countdown(cfg.SessionDuration), amount(cfg.ReferralReward),
				amount(cfg.MinWithdraw), amount(cfg.ExchangeRate))
			return nil
		})
	},
}

// configPatch builds an update from the flags the user set
func configPatch(cmd *cobra.Command) (domain.EconomyConfigUpdate, error) {
	var patch domain.EconomyConfigUpdate
	f := cmd.Flags()

	floatFlag := func(name string) *float64 {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetFloat64(name)
		return &v
	}
	patch.AccrualRate = floatFlag("rate")
	patch.ReferralReward = floatFlag("referral")
	patch.MinWithdraw = floatFlag("min-withdraw")
	patch.ExchangeRate = floatFlag("exchange-rate")
	if f.Changed("duration") {
		d, _ := f.GetDuration("duration")
		secs := d.Seconds()
		patch.SessionSeconds = &secs
	}

	if patch == (domain.EconomyConfigUpdate{}) {
		return patch, fmt.Errorf("nothing to change: pass at least one of --rate, --duration, --referral, --min-withdraw, --exchange-rate")
	}
	return patch, nil
}

// ─── pending / retry ───────────────────────────────────────────────────────

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List rewards and withdrawals waiting for the ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.close()

		parked, err := a.coord.PendingEvents(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if w, err := a.coord.PendingWithdrawal(ctx); err != nil {
			return err
		} else if w != nil {
			fmt.Fprintf(out, "Withdrawal %s of %s to %s awaiting the ledger\n", w.RequestID, amount(w.Amount), w.Address)
		}
		if len(parked) == 0 {
			fmt.Fprintln(out, "No parked rewards.")
			return nil
		}
		for _, p := range parked {
			fmt.Fprintf(out, "%-28s %10s  attempts=%d  parked=%s  %s\n",
				p.Event.Reason, amount(p.Event.Amount), p.Attempts, p.ParkedAt.Local().Format(time.DateTime), p.LastError)
		}
		return nil
	},
}

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Retry parked rewards and an unacknowledged withdrawal now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if receipt, ok, err := a.coord.RetryWithdrawal(ctx); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), describeError(err))
			} else if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Withdrawal %s acknowledged\n", receipt.RequestID)
			}
			if err := a.coord.Resume(ctx); err != nil && !errors.Is(err, reconcile.ErrParked) {
				return errors.New(describeError(err))
			}
			remaining, err := a.coord.RetryPending(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d reward(s) still parked. Balance: %s\n", remaining, amount(a.coord.User().Balance))
			return nil
		})
	},
}
