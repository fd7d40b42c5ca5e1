package eventlog

// Log messages
const (
	LogMsgFailedToMarshal     = "Failed to encode event payload, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
	LogMsgEventDropped        = "Event log queue full, entry dropped"
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// DefaultListLimit caps GetEvents when the filter sets no limit
const DefaultListLimit = 100
