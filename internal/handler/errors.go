package handler

// Generic HTTP error messages for client responses.
// Internal error details are never exposed.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidSince          = "since must be an RFC 3339 timestamp"
	ErrMsgInvalidLimit          = "limit must be a non-negative integer"
)

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgSubjectNotFoundErr  = "Subject not found"
	ErrMsgInvalidAmountError  = "Amount must be positive with at most two decimal places"
	ErrMsgInvalidReasonError  = "Reason must be mining:<id> or task:<id>"
	ErrMsgInvalidConfigError  = "Economy values must be non-negative and the session a whole number of seconds"
	ErrMsgAccessDeniedError   = "Access denied"
	ErrMsgInsufficientFunds   = "Not enough balance"

	ErrMsgBelowMinimum        = "Amount is below the minimum withdrawal"
	ErrMsgInsufficientBalance = "Amount exceeds the available balance"
	ErrMsgMalformedAddress    = "Payout address is malformed"
)

// Machine-readable error codes, matched by the ledger client
const (
	CodeInvalidRequest  = "invalid-request"
	CodeSubjectNotFound = "subject-not-found"
	CodeInvalidConfig   = "invalid-config"
	CodeAccessDenied    = "access-denied"
	CodeInternal        = "internal"
)
