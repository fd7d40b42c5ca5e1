package admin

// LogMsgPublishFailed is logged when the config change event cannot be delivered
const LogMsgPublishFailed = "Failed to publish config change"
