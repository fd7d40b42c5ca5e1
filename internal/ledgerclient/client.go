// Package ledgerclient talks to the authoritative ledger backend.
package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/logger"
)

// Client is the ledger boundary used by the reconciliation layer
type Client interface {
	Register(ctx context.Context, subjectID, displayName, referrerID string) (domain.Account, error)
	Balance(ctx context.Context, subjectID string) (domain.Account, error)
	Credit(ctx context.Context, ev domain.RewardEvent) (domain.CreditResult, error)
	Withdraw(ctx context.Context, req domain.WithdrawalRequest) (domain.WithdrawalReceipt, error)
	GetConfig(ctx context.Context) (domain.EconomyConfigUpdate, error)
	PutConfig(ctx context.Context, adminKey string, cfg domain.EconomyConfig) (domain.EconomyConfigUpdate, error)
}

// HTTPClient implements Client against the ledger REST API
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPClient creates a new ledger client
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type registerRequest struct {
	SubjectID   string `json:"subject_id"`
	DisplayName string `json:"display_name"`
	ReferrerID  string `json:"referrer_id,omitempty"`
}

// Register creates the subject if it does not exist and returns its account
func (c *HTTPClient) Register(ctx context.Context, subjectID, displayName, referrerID string) (domain.Account, error) {
	body, err := c.do(ctx, http.MethodPost, PathRegister, nil, registerRequest{
		SubjectID:   subjectID,
		DisplayName: displayName,
		ReferrerID:  referrerID,
	})
	if err != nil {
		return domain.Account{}, err
	}
	return parseAccount(body, subjectID)
}

// Balance fetches the authoritative balance and referrals
func (c *HTTPClient) Balance(ctx context.Context, subjectID string) (domain.Account, error) {
	body, err := c.do(ctx, http.MethodGet, PathBalance+url.PathEscape(subjectID), nil, nil)
	if err != nil {
		return domain.Account{}, err
	}
	return parseAccount(body, subjectID)
}

// Credit submits a reward event. A reason the ledger already applied yields ErrDuplicate.
func (c *HTTPClient) Credit(ctx context.Context, ev domain.RewardEvent) (domain.CreditResult, error) {
	body, err := c.do(ctx, http.MethodPost, PathCredit, nil, ev)
	if err != nil {
		if rej, ok := AsRejection(err); ok && rej.Status == http.StatusConflict {
			return domain.CreditResult{Duplicate: true}, ErrDuplicate
		}
		return domain.CreditResult{}, err
	}

	res := gjson.ParseBytes(body)
	if ok := res.Get("ok"); ok.Exists() && !ok.Bool() {
		return domain.CreditResult{}, &RejectionError{Status: http.StatusOK, Code: CodeRejected, Reason: res.Get("error").String()}
	}
	balance, _ := decimalField(res.Get("balance"))
	result := domain.CreditResult{
		Applied:   res.Get("applied").Bool(),
		Duplicate: res.Get("duplicate").Bool(),
		Balance:   balance,
	}
	if result.Duplicate {
		return result, ErrDuplicate
	}
	return result, nil
}

// Withdraw submits a withdrawal request. Replaying a request id returns the original receipt.
func (c *HTTPClient) Withdraw(ctx context.Context, req domain.WithdrawalRequest) (domain.WithdrawalReceipt, error) {
	body, err := c.do(ctx, http.MethodPost, PathWithdraw, nil, req)
	if err != nil {
		return domain.WithdrawalReceipt{}, err
	}

	res := gjson.ParseBytes(body)
	receipt := domain.WithdrawalReceipt{
		RequestID: res.Get("request_id").String(),
		Accepted:  res.Get("accepted").Bool(),
		Reason:    res.Get("reason").String(),
		CreatedAt: res.Get("created_at").Time(),
	}
	receipt.Balance, _ = decimalField(res.Get("balance"))
	if receipt.RequestID == "" {
		receipt.RequestID = req.RequestID
	}
	if !receipt.Accepted {
		return receipt, &RejectionError{Status: http.StatusOK, Code: receipt.Reason, Reason: res.Get("error").String()}
	}
	return receipt, nil
}

// GetConfig fetches the economy config. Malformed fields come back as nil.
func (c *HTTPClient) GetConfig(ctx context.Context) (domain.EconomyConfigUpdate, error) {
	body, err := c.do(ctx, http.MethodGet, PathConfig, nil, nil)
	if err != nil {
		return domain.EconomyConfigUpdate{}, err
	}
	return ParseConfig(body), nil
}

// PutConfig writes the economy config using the privileged admin key and returns the echo
func (c *HTTPClient) PutConfig(ctx context.Context, adminKey string, cfg domain.EconomyConfig) (domain.EconomyConfigUpdate, error) {
	headers := map[string]string{HeaderAdminKey: adminKey}
	body, err := c.do(ctx, http.MethodPut, PathConfig, headers, cfg.ToUpdate())
	if err != nil {
		return domain.EconomyConfigUpdate{}, err
	}
	return ParseConfig(body), nil
}

// do performs a single request and classifies the outcome
func (c *HTTPClient) do(ctx context.Context, method, path string, headers map[string]string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set(HeaderRequestID, id)
	}
	if c.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.APIKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRequestFailed, "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransient, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		logger.FromContext(ctx).Warn(LogMsgServerError, "method", method, "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrTransient, method, path, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, rejectionFrom(resp.StatusCode, body)
	}

	if len(body) > 0 && !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s %s returned malformed JSON", ErrTransient, method, path)
	}
	return body, nil
}

func rejectionFrom(status int, body []byte) *RejectionError {
	rej := &RejectionError{Status: status}
	if gjson.ValidBytes(body) {
		rej.Code = gjson.GetBytes(body, "code").String()
		rej.Reason = gjson.GetBytes(body, "error").String()
	}
	if rej.Code == "" {
		switch status {
		case http.StatusUnauthorized:
			rej.Code = CodeUnauthorized
		case http.StatusForbidden:
			rej.Code = CodeForbidden
		case http.StatusNotFound:
			rej.Code = CodeSubjectNotFound
		default:
			rej.Code = CodeInvalidRequest
		}
	}
	return rej
}

// parseAccount reads an account payload. A missing or malformed balance is a
// decoding failure; the local balance must not be replaced by a guess.
func parseAccount(body []byte, subjectID string) (domain.Account, error) {
	res := gjson.ParseBytes(body)
	balance, ok := decimalField(res.Get("balance"))
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account response without a valid balance", ErrTransient)
	}

	acct := domain.Account{
		SubjectID: res.Get("subject_id").String(),
		Balance:   balance,
		Referrals: []domain.Referral{},
	}
	if acct.SubjectID == "" {
		acct.SubjectID = subjectID
	}
	res.Get("referrals").ForEach(func(_, r gjson.Result) bool {
		earned, _ := decimalField(r.Get("earned"))
		acct.Referrals = append(acct.Referrals, domain.Referral{
			ID:       r.Get("id").String(),
			Username: r.Get("username").String(),
			Earned:   earned,
			Date:     r.Get("date").Time(),
		})
		return true
	})
	return acct, nil
}

// ParseConfig decodes an economy config leniently: each field is kept only if it
// is a finite, non-negative number (numeric strings are accepted).
func ParseConfig(body []byte) domain.EconomyConfigUpdate {
	res := gjson.ParseBytes(body)
	if data := res.Get("data"); data.IsObject() {
		res = data
	}
	return domain.EconomyConfigUpdate{
		AccrualRate:    floatField(res.Get("accrual_rate")),
		SessionSeconds: floatField(res.Get("session_duration_seconds")),
		ReferralReward: floatField(res.Get("referral_reward")),
		MinWithdraw:    floatField(res.Get("min_withdraw")),
		ExchangeRate:   floatField(res.Get("exchange_rate")),
	}
}

func floatField(r gjson.Result) *float64 {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Float()
	case gjson.String:
		d, err := decimal.NewFromString(strings.TrimSpace(r.Str))
		if err != nil {
			return nil
		}
		v = d.InexactFloat64()
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

func decimalField(r gjson.Result) (decimal.Decimal, bool) {
	var raw string
	switch r.Type {
	case gjson.Number:
		raw = r.Raw
	case gjson.String:
		raw = strings.TrimSpace(r.Str)
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
