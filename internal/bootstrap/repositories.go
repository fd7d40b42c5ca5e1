package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GlowMine_Go/internal/database/postgres"
	"github.com/osse101/GlowMine_Go/internal/eventlog"
	"github.com/osse101/GlowMine_Go/internal/repository"
)

// Repositories holds the repository implementations used by the backend
type Repositories struct {
	Ledger   repository.Ledger
	EventLog eventlog.Repository
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger:   postgres.NewLedgerRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
