package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RewardEvent is the unit submitted to the ledger.
// Reason is unique per action instance so the ledger can deduplicate.
type RewardEvent struct {
	SubjectID string          `json:"subject_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

// Kind returns the reason prefix ("mining", "task", "referral", "withdraw")
func (e RewardEvent) Kind() string {
	kind, _, _ := strings.Cut(e.Reason, ReasonSeparator)
	return kind
}

// Key identifies the event for idempotency purposes
func (e RewardEvent) Key() string {
	return e.SubjectID + "/" + e.Reason
}

// MiningReason returns the reason for the mining session started at startTime
func MiningReason(startTime time.Time) string {
	return ReasonMining + ReasonSeparator + strconv.FormatInt(startTime.UnixMilli(), 10)
}

// TaskReason returns the reason for completing the task with the given id
func TaskReason(taskID string) string {
	return ReasonTask + ReasonSeparator + taskID
}

// ReferralReason returns the reason for the referral credit earned by refereeID joining
func ReferralReason(refereeID string) string {
	return ReasonReferral + ReasonSeparator + refereeID
}

// WithdrawReason returns the reason for the debit of a withdrawal request
func WithdrawReason(requestID string) string {
	return ReasonWithdraw + ReasonSeparator + requestID
}

// PendingEvent is a reward event parked after exhausting its retry ceiling
type PendingEvent struct {
	Event     RewardEvent `json:"event"`
	Attempts  int         `json:"attempts"`
	LastError string      `json:"last_error,omitempty"`
	ParkedAt  time.Time   `json:"parked_at"`
}

// CreditResult is the ledger's answer to a credit submission
type CreditResult struct {
	Applied   bool            `json:"applied"`
	Duplicate bool            `json:"duplicate"`
	Balance   decimal.Decimal `json:"balance"`
}

// WithdrawalRequest asks the ledger to pay out part of a balance
type WithdrawalRequest struct {
	RequestID string          `json:"request_id"`
	SubjectID string          `json:"subject_id"`
	Amount    decimal.Decimal `json:"amount"`
	Address   string          `json:"address"`
}

// Withdrawal rejection reasons (machine-readable)
const (
	WithdrawRejectBelowMinimum        = "below-minimum"
	WithdrawRejectInsufficientBalance = "insufficient-balance"
	WithdrawRejectMalformedAddress    = "malformed-address"
)

// WithdrawalReceipt is the ledger's answer to a withdrawal request
type WithdrawalReceipt struct {
	RequestID string          `json:"request_id"`
	Accepted  bool            `json:"accepted"`
	Reason    string          `json:"reason,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}
