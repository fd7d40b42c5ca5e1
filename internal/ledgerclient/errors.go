package ledgerclient

import (
	"errors"
	"fmt"
)

// ErrTransient marks failures worth retrying: network errors, timeouts, 5xx, 429
// and responses that could not be decoded.
var ErrTransient = errors.New("ledger temporarily unavailable")

// ErrDuplicate reports that the ledger already applied the event's reason.
// Callers treat it as success.
var ErrDuplicate = errors.New("reward already applied")

// Rejection codes the ledger may return
const (
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeSubjectNotFound = "subject-not-found"
	CodeInvalidRequest  = "invalid-request"
	CodeRejected        = "rejected"
	CodeAccessDenied    = "access-denied"
	CodeInvalidConfig   = "invalid-config"
)

// RejectionError is an authoritative refusal. It is never retried.
type RejectionError struct {
	Status int
	Code   string
	Reason string
}

func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ledger rejected request (%d %s)", e.Status, e.Code)
	}
	return fmt.Sprintf("ledger rejected request (%d %s): %s", e.Status, e.Code, e.Reason)
}

// IsRetryable reports whether err is worth another attempt
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}

// AsRejection returns the rejection wrapped in err, if any
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
