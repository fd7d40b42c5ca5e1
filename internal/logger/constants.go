package logger

// Accepted LOG_LEVEL values; "warning" is an alias of "warn"
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Service names attached to every record. The ledger backend and the miner
// CLI log under different names so their output can share a sink.
const (
	DefaultServiceName = "glowmine-ledger"
	ClientServiceName  = "glowmine-miner"
	DefaultVersion     = "dev"
)

// EnvironmentDev is the environment assumed when none is configured
const EnvironmentDev = "dev"

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
