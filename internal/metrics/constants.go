package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRateLimited      = "http_rate_limited_total"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Client-side reward metric names
const (
	MetricNameRewardSubmissions = "reward_submissions_total"
	MetricNameRewardRetries     = "reward_retries_total"
	MetricNameConfigFallbacks   = "config_fallbacks_total"
)

// Ledger metric names
const (
	MetricNameLedgerCredits         = "ledger_credits_total"
	MetricNameLedgerCreditedAmount  = "ledger_credited_amount_total"
	MetricNameWithdrawals           = "ledger_withdrawals_total"
	MetricNameBalanceCacheLookups   = "ledger_balance_cache_lookups_total"
	MetricNameNotificationsFailures = "ledger_notification_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRateLimited      = "Total number of requests rejected by the rate limiter"

	HelpTextEventsPublished = "Total number of events published"

	HelpTextRewardSubmissions = "Reward submissions by reward kind and final outcome"
	HelpTextRewardRetries     = "Reward submission retries after a transient failure"
	HelpTextConfigFallbacks   = "Config fields that fell back to the last-known-good value"

	HelpTextLedgerCredits         = "Credit requests handled by the ledger by reward kind and result"
	HelpTextLedgerCreditedAmount  = "Total amount credited by the ledger"
	HelpTextWithdrawals           = "Withdrawal requests by result"
	HelpTextBalanceCacheLookups   = "Balance cache lookups by result"
	HelpTextNotificationsFailures = "Withdrawal notifications that failed to send"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
	LabelField   = "field"
	LabelResult  = "result"
)

// Label values
const (
	ResultApplied   = "applied"
	ResultDuplicate = "duplicate"
	ResultAccepted  = "accepted"
	ResultRejected  = "rejected"
	ResultHit       = "hit"
	ResultMiss      = "miss"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
)
