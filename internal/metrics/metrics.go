package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRateLimited,
			Help: HelpTextHTTPRateLimited,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Client reward metrics
var (
	RewardSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardSubmissions,
			Help: HelpTextRewardSubmissions,
		},
		[]string{LabelKind, LabelOutcome},
	)

	RewardRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardRetries,
			Help: HelpTextRewardRetries,
		},
		[]string{LabelKind},
	)

	ConfigFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfigFallbacks,
			Help: HelpTextConfigFallbacks,
		},
		[]string{LabelField},
	)
)

// Ledger metrics
var (
	LedgerCredits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerCredits,
			Help: HelpTextLedgerCredits,
		},
		[]string{LabelKind, LabelResult},
	)

	LedgerCreditedAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLedgerCreditedAmount,
			Help: HelpTextLedgerCreditedAmount,
		},
	)

	Withdrawals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWithdrawals,
			Help: HelpTextWithdrawals,
		},
		[]string{LabelResult},
	)

	BalanceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBalanceCacheLookups,
			Help: HelpTextBalanceCacheLookups,
		},
		[]string{LabelResult},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsFailures,
			Help: HelpTextNotificationsFailures,
		},
	)
)
