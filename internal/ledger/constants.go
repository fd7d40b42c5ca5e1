package ledger

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 30 * time.Second
)

// Log messages
const (
	LogMsgSubjectRegistered  = "Subject registered"
	LogMsgReferralCredited   = "Referral credited"
	LogMsgCreditApplied      = "Credit applied"
	LogMsgCreditDuplicate    = "Credit already applied"
	LogMsgWithdrawalAccepted = "Withdrawal accepted"
	LogMsgWithdrawalRejected = "Withdrawal rejected"
	LogMsgWithdrawalReplayed = "Withdrawal replayed"
	LogMsgConfigUpdated      = "Economy config updated"
	LogMsgPublishFailed      = "Failed to publish ledger event"
)
