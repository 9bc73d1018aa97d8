package config

import "time"

// Config represents the top-level configuration.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Retry   RetryConfig   `yaml:"retry"`
	Log     LogConfig     `yaml:"log"`
	Health  HealthConfig  `yaml:"health"`
	Logging LoggingConfig `yaml:"logging"`
}

// HistoryConfig bounds the in-memory error history ring.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// RetryConfig controls the auto-retry backoff curve.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
}

// LogConfig holds persistent log store settings.
type LogConfig struct {
	Dir         string `yaml:"dir"`
	MaxFileSize int64  `yaml:"max_file_size"` // bytes
	MaxFiles    int    `yaml:"max_files"`
	QueueSize   int    `yaml:"queue_size"`
}

// HealthConfig holds health status thresholds.
type HealthConfig struct {
	CriticalWindow       time.Duration `yaml:"critical_window"`
	DegradedThreshold24h int           `yaml:"degraded_threshold_24h"`
}

// LoggingConfig holds process logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
