package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the ledger backend configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey          string // API key for authentication
	AdminAccessCode string // privileged config writes
	TrustedProxies  []string

	DiscordToken     string // optional; enables withdrawal notifications
	DiscordChannelID string

	RateLimitRPS    float64
	RateLimitBurst  int
	MaxRequestBytes int64

	BalanceCacheSize int
	BalanceCacheTTL  time.Duration
	WorkerCount      int
	WorkerQueueSize  int

	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		APIKey:          getEnv("API_KEY", ""),
		AdminAccessCode: getEnv("ADMIN_ACCESS_CODE", ""),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),

		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),

		RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		MaxRequestBytes: int64(getEnvAsInt("MAX_REQUEST_BYTES", DefaultMaxRequestBytes)),

		BalanceCacheSize: getEnvAsInt("BALANCE_CACHE_SIZE", DefaultBalanceCacheSize),
		BalanceCacheTTL:  getEnvAsDuration("BALANCE_CACHE_TTL", DefaultBalanceCacheTTL),
		WorkerCount:      getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:  getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		EventLogRetention:       getEnvAsDuration("EVENT_LOG_RETENTION", DefaultEventLogRetention),
		EventLogCleanupInterval: getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupInterval),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.AdminAccessCode == "" {
		return nil, fmt.Errorf("ADMIN_ACCESS_CODE environment variable must be set")
	}
	if cfg.DiscordToken != "" && cfg.DiscordChannelID == "" {
		return nil, fmt.Errorf("DISCORD_CHANNEL_ID must be set when DISCORD_TOKEN is set")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for maintenance tools that
// must run without the API secrets
func LoadDatabase() *Config {
	_ = godotenv.Load()

	return &Config{
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
	}
}

// NotificationsEnabled reports whether withdrawal notifications are configured
func (c *Config) NotificationsEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return c.connString(c.DBName)
}

// GetMaintenanceConnString points at the server's postgres database,
// used to create or drop DBName
func (c *Config) GetMaintenanceConnString() string {
	return c.connString("postgres")
}

func (c *Config) connString(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		dbName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma-separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
