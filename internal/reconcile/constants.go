package reconcile

const jitterFraction = 0.1

// Log messages
const (
	LogMsgSubmitRetry     = "Reward submission failed, retrying"
	LogMsgSubmitParked    = "Reward parked after exhausting retries"
	LogMsgSubmitRejected  = "Ledger rejected reward"
	LogMsgSubmitConfirmed = "Reward confirmed by ledger"
	LogMsgFetchFailed     = "Failed to fetch authoritative balance"
	LogMsgPersistFailed   = "Failed to persist local snapshot"
	LogMsgPendingResolve  = "Failed to clear parked reward"
	LogMsgPublishFailed   = "Failed to publish outcome event"
	LogMsgDispatchFailed  = "Worker pool refused submission, parking reward"
	LogMsgSessionResolved = "Mining session resolved"
	LogMsgSessionStarted  = "Mining session started"
	LogMsgWithdrawRetry   = "Withdrawal request failed, retrying"
	LogMsgWithdrawUnacked = "Withdrawal not acknowledged; kept for replay"
)
