package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Subject errors
	ErrMsgSubjectNotFound    = "subject not found"
	ErrMsgWithdrawalNotFound = "withdrawal not found"

	// Session errors
	ErrMsgSessionActive     = "a mining session is already active"
	ErrMsgSessionResolving  = "a mining session is awaiting confirmation"
	ErrMsgNoActiveSession   = "no mining session is active"
	ErrMsgSessionIncomplete = "mining session has not elapsed"
	ErrMsgResolutionPending = "a reward is still awaiting confirmation"

	// Task errors
	ErrMsgTaskNotFound         = "task not found"
	ErrMsgTaskAlreadyCompleted = "task already completed"
	ErrMsgInvalidTaskKind      = "invalid task kind"

	// Ledger errors
	ErrMsgDuplicateReason   = "reward already credited"
	ErrMsgInvalidAmount     = "amount must be a positive number"
	ErrMsgInvalidReason     = "invalid reward reason"
	ErrMsgWithdrawRejected  = "withdrawal rejected"
	ErrMsgInvalidConfig     = "invalid economy config"
	ErrMsgAccessDenied      = "access denied"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrSubjectNotFound    = errors.New(ErrMsgSubjectNotFound)
	ErrWithdrawalNotFound = errors.New(ErrMsgWithdrawalNotFound)

	ErrSessionActive     = errors.New(ErrMsgSessionActive)
	ErrSessionResolving  = errors.New(ErrMsgSessionResolving)
	ErrNoActiveSession   = errors.New(ErrMsgNoActiveSession)
	ErrSessionIncomplete = errors.New(ErrMsgSessionIncomplete)
	ErrResolutionPending = errors.New(ErrMsgResolutionPending)

	ErrTaskNotFound         = errors.New(ErrMsgTaskNotFound)
	ErrTaskAlreadyCompleted = errors.New(ErrMsgTaskAlreadyCompleted)
	ErrInvalidTaskKind      = errors.New(ErrMsgInvalidTaskKind)

	ErrDuplicateReason   = errors.New(ErrMsgDuplicateReason)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidReason     = errors.New(ErrMsgInvalidReason)
	ErrWithdrawRejected  = errors.New(ErrMsgWithdrawRejected)
	ErrInvalidConfig     = errors.New(ErrMsgInvalidConfig)
	ErrAccessDenied      = errors.New(ErrMsgAccessDenied)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
)
