package scheduler

// LogMsgEnqueueFailed is logged when a scheduled job cannot be handed to the dispatcher
const LogMsgEnqueueFailed = "Scheduled job enqueue failed, stopping schedule"
