package config

import (
	redisclient "github.com/jacolabs/eventflow/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Parser   ParserConfig       `yaml:"parser"`
	Recovery RecoveryConfig     `yaml:"recovery"`
	Launch   LaunchConfig       `yaml:"launch"`
	Redis    redisclient.Config `yaml:"redis"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// ServerConfig holds health/metrics HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ParserConfig holds settings for the remote parsing service.
type ParserConfig struct {
	URL       string `yaml:"url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Timezone  string `yaml:"timezone"` // IANA id sent with each request
	Locale    string `yaml:"locale"`
}

// RecoveryConfig holds the tunables of the recovery orchestrator and the
// request cache.
type RecoveryConfig struct {
	MaxRetryAttempts       int     `yaml:"max_retry_attempts"`
	BaseRetryDelayMs       int     `yaml:"base_retry_delay_ms"`
	MaxRetryDelayMs        int     `yaml:"max_retry_delay_ms"`
	ConfidenceThreshold    float64 `yaml:"confidence_threshold"`
	EnableOfflineMode      bool    `yaml:"enable_offline_mode"`
	EnableFallbackCreation bool    `yaml:"enable_fallback_creation"`
	CacheExpirationHours   int     `yaml:"cache_expiration_hours"`
	MaxCachedRequests      int     `yaml:"max_cached_requests"`
	ReplayIntervalSec      int     `yaml:"replay_interval_sec"`
}

// LaunchConfig holds the tunables of the launch dispatcher.
type LaunchConfig struct {
	EnableNativeDefault     bool `yaml:"enable_native_default"`
	EnableSpecificApps      bool `yaml:"enable_specific_apps"`
	EnableGenericHandler    bool `yaml:"enable_generic_handler"`
	EnableWebFallback       bool `yaml:"enable_web_fallback"`
	EnableClipboardFallback bool `yaml:"enable_clipboard_fallback"`
}
