package config

import "time"

// Backend defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "glowmine-ledger"
	DefaultVersion     = "dev"
	DefaultDBName      = "glowmine"

	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultRateLimitRPS    = 5.0
	DefaultRateLimitBurst  = 10
	DefaultMaxRequestBytes = 1 << 20

	DefaultBalanceCacheSize = 1024
	DefaultBalanceCacheTTL  = 30 * time.Second
	DefaultWorkerCount      = 2
	DefaultWorkerQueueSize  = 64

	DefaultEventLogRetention       = 30 * 24 * time.Hour
	DefaultEventLogCleanupInterval = 24 * time.Hour
)

// Client defaults
const (
	DefaultClientStatePath      = "glowmine.db"
	DefaultClientPollInterval   = time.Second
	DefaultClientHTTPTimeout    = 10 * time.Second
	DefaultClientMaxRetries     = 3
	DefaultClientRetryBase      = time.Second
	DefaultClientRetryMax       = 30 * time.Second
	DefaultClientSweepInterval  = time.Minute
	DefaultClientConfigInterval = 5 * time.Minute
	DefaultClientWorkers        = 2
	DefaultClientQueueSize      = 32
	DefaultAdminCodeLength      = 4
)
