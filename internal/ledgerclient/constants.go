package ledgerclient

// API paths
const (
	PathRegister = "/api/v1/register"
	PathBalance  = "/api/v1/balance/"
	PathCredit   = "/api/v1/credit"
	PathWithdraw = "/api/v1/withdraw"
	PathConfig   = "/api/v1/config"
)

// Headers
const (
	HeaderAPIKey    = "X-API-Key"
	HeaderAdminKey  = "X-Admin-Key"
	HeaderRequestID = "X-Request-ID"
)

const maxResponseBytes = 1 << 20

// Log messages
const (
	LogMsgRequestFailed = "Ledger request failed"
	LogMsgServerError   = "Ledger returned a retryable status"
)
