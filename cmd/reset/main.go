// Command reset recreates the ledger database and applies the migrations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/osse101/GlowMine_Go/internal/config"
	"github.com/osse101/GlowMine_Go/internal/database"
	"github.com/osse101/GlowMine_Go/internal/logger"
)

var createOnly bool

var rootCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop, recreate and migrate the ledger database",
	Long: `Drop DB_NAME, create it again and apply the embedded migrations.
With --create-only an existing database is kept and only migrated.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reset(cmd.Context(), config.LoadDatabase())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&createOnly, "create-only", false, "keep an existing database; create it only if missing")
}

func main() {
	logCfg := logger.CLIConfig()
	logCfg.Level = logger.LogLevelInfo
	logger.InitLogger(logCfg)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func reset(ctx context.Context, cfg *config.Config) error {
	server, err := database.NewPool(ctx, cfg.GetMaintenanceConnString(), 1, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer server.Close()

	ident := pgx.Identifier{cfg.DBName}.Sanitize()

	var exists bool
	if err := server.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up database %s: %w", cfg.DBName, err)
	}

	if exists && !createOnly {
		slog.Info("Terminating connections", "database", cfg.DBName)
		if _, err := server.Exec(ctx, `
			SELECT pg_terminate_backend(pid) FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
			slog.Warn("Failed to terminate connections", "error", err)
		}
		if _, err := server.Exec(ctx, "DROP DATABASE "+ident); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
		slog.Info("Database dropped", "database", cfg.DBName)
		exists = false
	}

	if !exists {
		if _, err := server.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		slog.Info("Database created", "database", cfg.DBName)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.DBName, err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	slog.Info("Database ready", "database", cfg.DBName)
	return nil
}
