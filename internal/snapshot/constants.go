package snapshot

const driverName = "sqlite"

// keyResolution holds the resolution of a session whose reward is not yet confirmed
const keyResolution = "glowmine_resolution"

// keyWithdrawal holds a withdrawal request the ledger has not acknowledged
const keyWithdrawal = "glowmine_withdrawal"

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}
