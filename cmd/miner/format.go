package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/ledgerclient"
	"github.com/osse101/GlowMine_Go/internal/reconcile"
	"github.com/osse101/GlowMine_Go/internal/referral"
	"github.com/osse101/GlowMine_Go/internal/session"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// amount renders a reward amount with thousands separators and two decimals
func amount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(domain.CreditScale).InexactFloat64())
}

func usd(d decimal.Decimal) string {
	return "$" + amount(d)
}

func countdown(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func printStatus(w io.Writer, u domain.User, cfg domain.EconomyConfig, p session.Progress, refs *referral.Mirror) {
	fmt.Fprintf(w, "Subject:   %s (%s)\n", u.DisplayName, u.SubjectID)
	fmt.Fprintf(w, "Balance:   %s  (%s)\n", amount(u.Balance), usd(cfg.USDValue(u.Balance)))

	switch p.State {
	case session.Active:
		fmt.Fprintf(w, "Session:   mining, %s left\n", countdown(p.Remaining))
	case session.Resolving:
		fmt.Fprintln(w, "Session:   reward awaiting confirmation")
	default:
		fmt.Fprintln(w, "Session:   idle")
	}
	fmt.Fprintf(w, "Rate:      %s per session\n", amount(cfg.AccrualRate.Mul(decimal.NewFromInt(cfg.SessionSeconds()))))

	fmt.Fprintln(w, "Tasks:")
	for _, t := range u.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %-4s %-8s %10s  %s\n", mark, t.ID, titler.String(string(t.Kind)), amount(t.Reward), t.Title)
	}

	fmt.Fprintf(w, "Referrals: %d, earned %s\n", refs.Count(), amount(refs.TotalEarned()))
}

// describeError turns coordinator errors into a line the user can act on
func describeError(err error) string {
	var verr *withdrawal.ValidationError
	if errors.As(err, &verr) {
		parts := make([]string, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			parts = append(parts, withdrawalHint(v))
		}
		return "withdrawal refused: " + strings.Join(parts, "; ")
	}

	var rej *ledgerclient.RejectionError
	if errors.As(err, &rej) {
		if hint := withdrawalHint(rej.Code); hint != rej.Code {
			return "ledger refused the withdrawal: " + hint
		}
		return fmt.Sprintf("ledger refused the request (%s)", rej.Code)
	}

	if errors.Is(err, reconcile.ErrWithdrawalPending) {
		return "an earlier withdrawal is still awaiting the ledger; run `miner retry` later"
	}
	if ledgerclient.IsRetryable(err) {
		return "ledger unreachable; try again later"
	}
	return err.Error()
}

func withdrawalHint(reason string) string {
	switch reason {
	case domain.WithdrawRejectBelowMinimum:
		return "amount is below the minimum"
	case domain.WithdrawRejectInsufficientBalance:
		return "amount exceeds the balance"
	case domain.WithdrawRejectMalformedAddress:
		return "address is too short"
	}
	return reason
}
