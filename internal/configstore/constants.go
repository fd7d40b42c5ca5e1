package configstore

// Config field names, as they appear on the wire
const (
	FieldAccrualRate     = "accrual_rate"
	FieldSessionDuration = "session_duration_seconds"
	FieldReferralReward  = "referral_reward"
	FieldMinWithdraw     = "min_withdraw"
	FieldExchangeRate    = "exchange_rate"
)

// Log messages
const (
	LogMsgRefreshFailed = "Config refresh failed, keeping last-known-good config"
	LogMsgFieldFallback = "Config fields malformed, keeping last-known-good values"
	LogMsgConfigMutated = "Economy config updated"
)
