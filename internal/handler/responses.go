package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// encode first so a marshal failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps err to a status, code and message and writes it
func respondServiceError(w http.ResponseWriter, err error) {
	status, code, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, code, msg)
}

// mapServiceErrorToUserMessage converts service errors into an HTTP status, a
// machine-readable code and a message users can act upon
func mapServiceErrorToUserMessage(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, CodeInternal, ErrMsgUnknownError
	}

	var rejection *withdrawal.ValidationError
	if errors.As(err, &rejection) {
		return http.StatusUnprocessableEntity, rejection.Reason, withdrawalMessage(rejection.Reason)
	}

	switch {
	case errors.Is(err, domain.ErrSubjectNotFound):
		return http.StatusNotFound, CodeSubjectNotFound, ErrMsgSubjectNotFoundErr
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidReason):
		return http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidReasonError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest, CodeInvalidConfig, ErrMsgInvalidConfigError
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, CodeAccessDenied, ErrMsgAccessDeniedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, domain.WithdrawRejectInsufficientBalance, ErrMsgInsufficientFunds
	}

	return http.StatusInternalServerError, CodeInternal, ErrMsgGenericServerError
}

func withdrawalMessage(reason string) string {
	switch reason {
	case domain.WithdrawRejectBelowMinimum:
		return ErrMsgBelowMinimum
	case domain.WithdrawRejectInsufficientBalance:
		return ErrMsgInsufficientBalance
	case domain.WithdrawRejectMalformedAddress:
		return ErrMsgMalformedAddress
	}
	return domain.ErrMsgWithdrawRejected
}
