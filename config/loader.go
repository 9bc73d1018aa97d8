package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.History.Limit == 0 {
		cfg.History.Limit = 100
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = 2 * time.Second
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = 60 * time.Second
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = "logs"
	}
	if cfg.Log.MaxFileSize == 0 {
		cfg.Log.MaxFileSize = 10 * 1024 * 1024
	}
	if cfg.Log.MaxFiles == 0 {
		cfg.Log.MaxFiles = 5
	}
	if cfg.Log.QueueSize == 0 {
		cfg.Log.QueueSize = 256
	}
	if cfg.Health.CriticalWindow == 0 {
		cfg.Health.CriticalWindow = 15 * time.Minute
	}
	if cfg.Health.DegradedThreshold24h == 0 {
		cfg.Health.DegradedThreshold24h = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate rejects configurations that cannot work.
func (c *Config) Validate() error {
	if c.History.Limit < 1 {
		return fmt.Errorf("history.limit must be positive, got %d", c.History.Limit)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be positive, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must not be negative, got %s", c.Retry.BaseDelay)
	}
	if c.Log.Dir == "" {
		return fmt.Errorf("log.dir must not be empty")
	}
	if c.Log.MaxFileSize < 1 {
		return fmt.Errorf("log.max_file_size must be positive, got %d", c.Log.MaxFileSize)
	}
	if c.Log.MaxFiles < 1 {
		return fmt.Errorf("log.max_files must be positive, got %d", c.Log.MaxFiles)
	}
	return nil
}
