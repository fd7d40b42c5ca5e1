package domain

import "time"

// Default economy (used as the first last-known-good snapshot)
const (
	DefaultAccrualRate     = "0.05"
	DefaultSessionDuration = 3600 * time.Second
	DefaultReferralReward  = 500
	DefaultMinWithdraw     = 10000
	DefaultExchangeRate    = 1000

	// MinSessionDuration is the shortest session a config may set
	MinSessionDuration = time.Second
)

// CreditScale is the number of decimal places of the smallest credit unit
const CreditScale int32 = 2

// MinAddressLength is the exclusive lower bound on a payout address length
const MinAddressLength = 10

// Reward reason prefixes
const (
	ReasonMining   = "mining"
	ReasonTask     = "task"
	ReasonReferral = "referral"
	ReasonWithdraw = "withdraw"

	ReasonSeparator = ":"
)

// Task kinds
const (
	TaskKindVideo  TaskKind = "video"
	TaskKindLink   TaskKind = "link"
	TaskKindSocial TaskKind = "social"

	// legacyTaskKindTelegram is accepted on input and normalised to social
	legacyTaskKindTelegram = "telegram"
)

// Persisted snapshot keys
const (
	SnapshotKeyUser   = "glowmine_user"
	SnapshotKeyConfig = "glowmine_config"
)
