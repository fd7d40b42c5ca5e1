package bootstrap

import (
	"log/slog"

	"github.com/osse101/GlowMine_Go/internal/config"
	"github.com/osse101/GlowMine_Go/internal/logger"
)

// SetupLogger initializes the default slog logger from the backend config and
// logs the startup banner
func SetupLogger(cfg *config.Config) *slog.Logger {
	addSource := cfg.Environment == EnvDev || cfg.Environment == EnvDevelopment

	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	l.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	l.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"notifications", cfg.NotificationsEnabled())

	return l
}
