package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("PLATFORM_MAX_RETRIES", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("HTTPPort: want=%q got=%q", "8080", cfg.HTTPPort)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Fatalf("RedisAddr: want=%q got=%q", "cache:6379", cfg.RedisAddr)
	}
	if cfg.Platforms.MaxRetries != 0 {
		t.Fatalf("MaxRetries: want=0 got=%d", cfg.Platforms.MaxRetries)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formsmith.yaml")
	body := []byte(`
httpPort: "9090"
platforms:
  surveyMonkeyBaseUrl: http://sm.local/v3
  timeoutSeconds: 5
  googleSheetDefault: true
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PORT", "8081")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("HTTPPort: want=%q got=%q", "9090", cfg.HTTPPort)
	}
	if cfg.Platforms.SurveyMonkeyURL != "http://sm.local/v3" {
		t.Fatalf("SurveyMonkeyURL: want=%q got=%q", "http://sm.local/v3", cfg.Platforms.SurveyMonkeyURL)
	}
	if cfg.Platforms.TimeoutSeconds != 5 {
		t.Fatalf("TimeoutSeconds: want=5 got=%d", cfg.Platforms.TimeoutSeconds)
	}
	if !cfg.Platforms.GoogleSheetDefault {
		t.Fatalf("GoogleSheetDefault: want=true")
	}
}

func TestLoadMissingOverlayFails(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("Load: expected error for missing config file")
	}
}

func TestAIConfigEndpoint(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_BASE_URL", "http://ai.local/models")
	cfg := DefaultAIConfig()
	if cfg.IsEnabled() {
		t.Fatalf("IsEnabled: want=false without key")
	}
	if got := cfg.ModelEndpoint("m1"); got != "http://ai.local/models/m1:generateContent" {
		t.Fatalf("ModelEndpoint: got=%q", got)
	}
}
