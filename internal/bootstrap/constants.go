package bootstrap

// Environments that log source locations
const (
	EnvDev         = "dev"
	EnvDevelopment = "development"
)

// Log messages for logger initialization
const (
	LogMsgStartingService     = "Starting GlowMine ledger"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLogRegistered         = "Event log registered"
	LogMsgNotifierEnabled            = "Withdrawal notifications enabled"
	LogMsgNotifierDisabled           = "Withdrawal notifications disabled; DISCORD_TOKEN not set"
	ErrMsgFailedCreateNotifier       = "failed to create withdrawal notifier"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgDrainingWorkers      = "Draining worker pool..."
	LogMsgWorkerDrainTimeout   = "Worker pool did not drain before the deadline"
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
