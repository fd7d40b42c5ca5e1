package notify

import "time"

const (
	EmbedTitleWithdrawal = "Withdrawal Requested"
	EmbedFooter          = "GlowMine Ledger"

	embedColorWithdrawal = 0x2ECC71 // green
	sendTimeout          = 10 * time.Second
)

// Log messages
const (
	LogMsgNotifySent    = "Withdrawal notification sent"
	LogMsgNotifyFailed  = "Withdrawal notification failed"
	LogMsgNotifyDropped = "Withdrawal notification dropped"
)
