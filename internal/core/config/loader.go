package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills in zero values with sensible defaults.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Parser.TimeoutMs == 0 {
		cfg.Parser.TimeoutMs = 10000
	}
	if cfg.Parser.Timezone == "" {
		cfg.Parser.Timezone = "UTC"
	}
	if cfg.Parser.Locale == "" {
		cfg.Parser.Locale = "en-US"
	}
	if cfg.Recovery.MaxRetryAttempts == 0 {
		cfg.Recovery.MaxRetryAttempts = 3
	}
	if cfg.Recovery.BaseRetryDelayMs == 0 {
		cfg.Recovery.BaseRetryDelayMs = 1000
	}
	if cfg.Recovery.MaxRetryDelayMs == 0 {
		cfg.Recovery.MaxRetryDelayMs = 30000
	}
	if cfg.Recovery.ConfidenceThreshold == 0 {
		cfg.Recovery.ConfidenceThreshold = 0.30
	}
	if cfg.Recovery.CacheExpirationHours == 0 {
		cfg.Recovery.CacheExpirationHours = 24
	}
	if cfg.Recovery.MaxCachedRequests == 0 {
		cfg.Recovery.MaxCachedRequests = 50
	}
	if cfg.Recovery.ReplayIntervalSec == 0 {
		cfg.Recovery.ReplayIntervalSec = 60
	}
}

// Validate rejects configurations the orchestrator cannot run with.
func Validate(cfg *AppConfig) error {
	if cfg.Parser.URL == "" {
		return fmt.Errorf("configuration error: parser.url is required")
	}
	if cfg.Recovery.ConfidenceThreshold < 0 || cfg.Recovery.ConfidenceThreshold > 1 {
		return fmt.Errorf("configuration error: confidence_threshold %.2f outside [0,1]",
			cfg.Recovery.ConfidenceThreshold)
	}
	if cfg.Recovery.BaseRetryDelayMs > cfg.Recovery.MaxRetryDelayMs {
		return fmt.Errorf("configuration error: base_retry_delay_ms %d exceeds max_retry_delay_ms %d",
			cfg.Recovery.BaseRetryDelayMs, cfg.Recovery.MaxRetryDelayMs)
	}
	return nil
}

// DefaultLaunch returns a launch configuration with every strategy enabled.
func DefaultLaunch() LaunchConfig {
	return LaunchConfig{
		EnableNativeDefault:     true,
		EnableSpecificApps:      true,
		EnableGenericHandler:    true,
		EnableWebFallback:       true,
		EnableClipboardFallback: true,
	}
}
