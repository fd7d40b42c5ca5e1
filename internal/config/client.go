package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/osse101/GlowMine_Go/internal/domain"
)

// ClientConfig is the miner client's TOML configuration
type ClientConfig struct {
	BackendURL  string        `toml:"backend_url"`
	APIKey      string        `toml:"api_key"`
	SubjectID   string        `toml:"subject_id"`
	DisplayName string        `toml:"display_name"`
	ReferrerID  string        `toml:"referrer_id"`
	StatePath   string        `toml:"state_path"`
	LogLevel    string        `toml:"log_level"`
	HTTPTimeout time.Duration `toml:"http_timeout"`

	PollInterval          time.Duration `toml:"poll_interval"`
	PendingSweepInterval  time.Duration `toml:"pending_sweep_interval"`
	ConfigRefreshInterval time.Duration `toml:"config_refresh_interval"`
	Workers               int           `toml:"workers"`
	QueueSize             int           `toml:"queue_size"`

	AdminAccessCode string `toml:"admin_access_code"`
	InviteBaseURL   string `toml:"invite_base_url"`

	Retry RetryConfig       `toml:"retry"`
	Tasks []TaskEntryConfig `toml:"tasks"`
}

// RetryConfig bounds how long a reward submission is retried before parking
type RetryConfig struct {
	MaxRetries int           `toml:"max_retries"`
	BaseDelay  time.Duration `toml:"base_delay"`
	MaxDelay   time.Duration `toml:"max_delay"`
}

// TaskEntryConfig is one [[tasks]] entry of the catalogue
type TaskEntryConfig struct {
	ID     string        `toml:"id"`
	Title  string        `toml:"title"`
	Reward float64       `toml:"reward"`
	Kind   string        `toml:"kind"`
	Timer  time.Duration `toml:"timer"`
	Link   string        `toml:"link"`
}

// LoadClient reads the client configuration from path and applies defaults.
// A missing file yields the defaults.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode client config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) applyDefaults() {
	if c.StatePath == "" {
		c.StatePath = DefaultClientStatePath
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultClientHTTPTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultClientPollInterval
	}
	if c.PendingSweepInterval <= 0 {
		c.PendingSweepInterval = DefaultClientSweepInterval
	}
	if c.ConfigRefreshInterval <= 0 {
		c.ConfigRefreshInterval = DefaultClientConfigInterval
	}
	if c.Workers <= 0 {
		c.Workers = DefaultClientWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultClientQueueSize
	}
	if c.Retry.MaxRetries <= 0 {
		c.Retry.MaxRetries = DefaultClientMaxRetries
	}
	if c.Retry.BaseDelay <= 0 {
		c.Retry.BaseDelay = DefaultClientRetryBase
	}
	if c.Retry.MaxDelay <= 0 {
		c.Retry.MaxDelay = DefaultClientRetryMax
	}
	if c.DisplayName == "" {
		c.DisplayName = c.SubjectID
	}
}

// Validate checks the fields the client cannot run without
func (c *ClientConfig) Validate() error {
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		return fmt.Errorf("retry.max_delay (%s) must not be below retry.base_delay (%s)", c.Retry.MaxDelay, c.Retry.BaseDelay)
	}
	if c.ReferrerID != "" && c.ReferrerID == c.SubjectID {
		return fmt.Errorf("referrer_id must differ from subject_id")
	}
	seen := make(map[string]bool, len(c.Tasks))
	for _, t := range c.Tasks {
		if t.ID == "" {
			return fmt.Errorf("task entry without id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
		if t.Reward < 0 {
			return fmt.Errorf("task %q: reward must not be negative", t.ID)
		}
		if _, err := domain.ParseTaskKind(t.Kind); err != nil {
			return fmt.Errorf("task %q: %w: %s", t.ID, err, t.Kind)
		}
	}
	return nil
}

// RequireIdentity checks the fields needed to talk to the backend
func (c *ClientConfig) RequireIdentity() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url must be set")
	}
	if c.SubjectID == "" {
		return fmt.Errorf("subject_id must be set")
	}
	return nil
}

// TaskCatalogue returns the configured tasks, or the built-in defaults when none are configured
func (c *ClientConfig) TaskCatalogue() []domain.Task {
	if len(c.Tasks) == 0 {
		return domain.DefaultTasks()
	}
	tasks := make([]domain.Task, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		kind, _ := domain.ParseTaskKind(t.Kind)
		tasks = append(tasks, domain.Task{
			ID:     t.ID,
			Title:  t.Title,
			Reward: decimal.NewFromFloat(t.Reward).Round(domain.CreditScale),
			Kind:   kind,
			Timer:  t.Timer,
			Link:   t.Link,
		})
	}
	return tasks
}
