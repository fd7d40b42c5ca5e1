package handler

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/ledger"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/withdrawal"
)

// RegisterRequest represents the request to register a subject
type RegisterRequest struct {
	SubjectID   string `json:"subject_id" validate:"required,max=128,subject"`
	DisplayName string `json:"display_name" validate:"max=100"`
	ReferrerID  string `json:"referrer_id,omitempty" validate:"max=128,subject"`
}

// CreditRequest represents a reward submission
type CreditRequest struct {
	SubjectID string          `json:"subject_id" validate:"required,max=128,subject"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" validate:"gt=0"`
	Reason    string          `json:"reason" validate:"required,max=200,reason"`
}

// WithdrawRequest represents a payout request
type WithdrawRequest struct {
	RequestID string          `json:"request_id" validate:"required,max=64"`
	SubjectID string          `json:"subject_id" validate:"required,max=128,subject"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Address   string          `json:"address" validate:"max=256"`
}

// ConfigRequest represents a privileged economy config replacement
type ConfigRequest struct {
	AccrualRate    *float64 `json:"accrual_rate" validate:"required,gt=0"`
	SessionSeconds *float64 `json:"session_duration_seconds" validate:"required,gte=1"`
	ReferralReward *float64 `json:"referral_reward" validate:"required,gte=0"`
	MinWithdraw    *float64 `json:"min_withdraw" validate:"required,gte=0"`
	ExchangeRate   *float64 `json:"exchange_rate" validate:"required,gte=0"`
}

// WithdrawalRejectedResponse is returned with 422 when a withdrawal breaks a rule
type WithdrawalRejectedResponse struct {
	ErrorResponse
	domain.WithdrawalReceipt
}

// LedgerHandler handles ledger HTTP requests
type LedgerHandler struct {
	svc ledger.Service
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(svc ledger.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// HandleRegister registers a subject, crediting its referrer on first sight
// @Summary Register a subject
// @Description Idempotent upsert. A new subject with a known referrer credits the referrer once.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/register [post]
func (h *LedgerHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	acct, err := h.svc.Register(r.Context(), req.SubjectID, req.DisplayName, req.ReferrerID)
	if err != nil {
		log.Error("Register failed", "error", err, "subject_id", req.SubjectID)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, acct)
}

// HandleBalance returns the authoritative balance and referrals
// @Summary Get balance
// @Tags ledger
// @Produce json
// @Param subjectID path string true "Subject ID"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/balance/{subjectID} [get]
func (h *LedgerHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := GetPathParam(r, w, "subjectID")
	if !ok {
		return
	}

	acct, err := h.svc.Balance(r.Context(), subjectID)
	if err != nil {
		if !errors.Is(err, domain.ErrSubjectNotFound) {
			logger.FromContext(r.Context()).Error("Balance lookup failed", "error", err, "subject_id", subjectID)
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, acct)
}

// HandleCredit applies a reward event once per (subject, reason)
// @Summary Credit a reward
// @Description Replaying a reason returns 200 with duplicate=true and leaves the balance unchanged.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body CreditRequest true "Reward event"
// @Success 200 {object} domain.CreditResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/credit [post]
func (h *LedgerHandler) HandleCredit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CreditRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Credit"); err != nil {
		return
	}

	res, err := h.svc.Credit(r.Context(), domain.RewardEvent{
		SubjectID: req.SubjectID,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		log.Warn("Credit failed", "error", err, "subject_id", req.SubjectID, "reason", req.Reason)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// HandleWithdraw pays out part of a balance
// @Summary Request a withdrawal
// @Description Replaying a request_id returns the original outcome. Rule violations return 422 with code below-minimum, insufficient-balance or malformed-address.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Withdrawal"
// @Success 200 {object} domain.WithdrawalReceipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} WithdrawalRejectedResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/withdraw [post]
func (h *LedgerHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req WithdrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
		return
	}

	receipt, err := h.svc.Withdraw(r.Context(), domain.WithdrawalRequest{
		RequestID: req.RequestID,
		SubjectID: req.SubjectID,
		Amount:    req.Amount,
		Address:   req.Address,
	})
	if err != nil {
		var rejection *withdrawal.ValidationError
		if errors.As(err, &rejection) {
			status, code, msg := mapServiceErrorToUserMessage(err)
			respondJSON(w, status, WithdrawalRejectedResponse{
				ErrorResponse:     ErrorResponse{Error: msg, Code: code},
				WithdrawalReceipt: receipt,
			})
			return
		}
		log.Error("Withdraw failed", "error", err, "request_id", req.RequestID)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, receipt)
}

// HandleGetConfig returns the economy config
// @Summary Get economy config
// @Tags config
// @Produce json
// @Success 200 {object} domain.EconomyConfigUpdate
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/config [get]
func (h *LedgerHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetConfig(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Get config failed", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg.ToUpdate())
}

// HandlePutConfig replaces the economy config. Requires X-Admin-Key.
// @Summary Replace economy config
// @Tags config
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin access code"
// @Param request body ConfigRequest true "Economy config"
// @Success 200 {object} domain.EconomyConfigUpdate
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/config [put]
func (h *LedgerHandler) HandlePutConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ConfigRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Put config"); err != nil {
		return
	}

	cfg, err := req.toConfig()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	stored, err := h.svc.PutConfig(r.Context(), cfg)
	if err != nil {
		log.Warn("Put config failed", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stored.ToUpdate())
}

func (c ConfigRequest) toConfig() (domain.EconomyConfig, error) {
	for _, v := range []*float64{c.AccrualRate, c.SessionSeconds, c.ReferralReward, c.MinWithdraw, c.ExchangeRate} {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return domain.EconomyConfig{}, domain.ErrInvalidConfig
		}
	}
	if *c.SessionSeconds != math.Trunc(*c.SessionSeconds) {
		return domain.EconomyConfig{}, domain.ErrInvalidConfig
	}
	return domain.EconomyConfig{
		AccrualRate:     decimal.NewFromFloat(*c.AccrualRate),
		SessionDuration: time.Duration(*c.SessionSeconds) * time.Second,
		ReferralReward:  decimal.NewFromFloat(*c.ReferralReward),
		MinWithdraw:     decimal.NewFromFloat(*c.MinWithdraw),
		ExchangeRate:    decimal.NewFromFloat(*c.ExchangeRate),
	}, nil
}
