package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
parser:
  url: http://localhost:3000/parse
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Parser.TimeoutMs != 10000 {
		t.Errorf("expected default timeout 10000ms, got %d", cfg.Parser.TimeoutMs)
	}
	if cfg.Recovery.MaxRetryAttempts != 3 {
		t.Errorf("expected default 3 retries, got %d", cfg.Recovery.MaxRetryAttempts)
	}
	if cfg.Recovery.BaseRetryDelayMs != 1000 || cfg.Recovery.MaxRetryDelayMs != 30000 {
		t.Errorf("expected default delays 1000/30000, got %d/%d",
			cfg.Recovery.BaseRetryDelayMs, cfg.Recovery.MaxRetryDelayMs)
	}
	if cfg.Recovery.ConfidenceThreshold != 0.30 {
		t.Errorf("expected default threshold 0.30, got %.2f", cfg.Recovery.ConfidenceThreshold)
	}
	if cfg.Recovery.MaxCachedRequests != 50 || cfg.Recovery.CacheExpirationHours != 24 {
		t.Errorf("expected default cache bounds 50/24h, got %d/%dh",
			cfg.Recovery.MaxCachedRequests, cfg.Recovery.CacheExpirationHours)
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("PARSER_URL", "http://parser.internal:3000/parse")
	path := writeConfig(t, `
parser:
  url: ${PARSER_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Parser.URL != "http://parser.internal:3000/parse" {
		t.Errorf("expected expanded URL, got %q", cfg.Parser.URL)
	}
}

func TestLoad_MissingParserURL(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing parser.url")
	} else if !strings.Contains(err.Error(), "parser.url") {
		t.Errorf("error should name parser.url: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Parser.URL = "http://localhost:3000/parse"
	ApplyDefaults(cfg)

	cfg.Recovery.ConfidenceThreshold = 1.5
	if err := Validate(cfg); err == nil {
		t.Error("expected error for threshold above 1")
	}

	cfg.Recovery.ConfidenceThreshold = 0.30
	cfg.Recovery.BaseRetryDelayMs = 60000
	cfg.Recovery.MaxRetryDelayMs = 30000
	if err := Validate(cfg); err == nil {
		t.Error("expected error for base delay above max delay")
	}
}

func TestDefaultLaunch_AllEnabled(t *testing.T) {
	l := DefaultLaunch()
	if !l.EnableNativeDefault || !l.EnableSpecificApps || !l.EnableGenericHandler ||
		!l.EnableWebFallback || !l.EnableClipboardFallback {
		t.Errorf("every strategy should be enabled by default: %+v", l)
	}
}
