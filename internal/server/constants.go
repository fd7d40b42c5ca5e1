package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgAccessDenied    = "Access denied"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Machine-readable codes written by middleware
const (
	CodeUnauthorized = "unauthorized"
	CodeAccessDenied = "access-denied"
	CodeRateLimited  = "rate-limited"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Rate limit exceeded"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgAdminDenied      = "Admin key rejected"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAdminKey       = "X-Admin-Key"
	HeaderAuthorization  = "Authorization"
	HeaderRequestID      = "X-Request-ID"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRetryAfter     = "Retry-After"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueNoReferrer = "no-referrer"
	HeaderValueNoStore    = "no-store"
)

// Limits
const (
	FailedAuthAlertThreshold = 5
	DetectorWindow           = 5 * time.Minute
	DefaultRateLimitKeys     = 4096
	ReadHeaderTimeout        = 5 * time.Second
)

// PublicPaths bypass authentication and rate limiting
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
