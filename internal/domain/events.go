package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "reward.applied")
const (
	// EventTypeRewardApplied is published when the ledger confirms a new credit
	EventTypeRewardApplied = "reward.applied"

	// EventTypeRewardAlreadyApplied is published when the ledger reports the reason was already credited
	EventTypeRewardAlreadyApplied = "reward.already_applied"

	// EventTypeRewardParked is published when a reward exhausts its retries and is parked
	EventTypeRewardParked = "reward.parked"

	// EventTypeRewardRejected is published when the ledger refuses a reward
	EventTypeRewardRejected = "reward.rejected"

	// EventTypeBalanceSynced is published after the authoritative balance replaces the local one
	EventTypeBalanceSynced = "balance.synced"

	// EventTypeWithdrawalRequested is published by the backend when a withdrawal is accepted
	EventTypeWithdrawalRequested = "withdrawal.requested"

	// EventTypeConfigChanged is published when a privileged config mutation is acknowledged
	EventTypeConfigChanged = "config.changed"
)
