package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT", "LOG_LEVEL", "ADAPTER_BASE_URL", "API_KEY",
		"MODERATOR_USER_ID", "MODERATOR_TOKEN", "ADAPTER_TIMEOUT",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET",
		"S3_REGION", "S3_USE_SSL", "S3_URL_TTL",
		"REVIEW_PAGE_SIZE", "SCROLL_THRESHOLD_PX", "SCROLL_DEBOUNCE",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_KEY", "key-1")
	t.Setenv("MODERATOR_USER_ID", "mod-1")
	t.Setenv("MODERATOR_TOKEN", "token-1")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
review:
  page_size: 10
  scroll_threshold_px: 150
  scroll_debounce: 500ms
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Review.PageSize != 10 {
		t.Fatalf("unexpected page size: %d", cfg.Review.PageSize)
	}
	if cfg.Review.ScrollThresholdPx != 150 {
		t.Fatalf("unexpected scroll threshold: %d", cfg.Review.ScrollThresholdPx)
	}
	if cfg.Review.ScrollDebounce != 500*time.Millisecond {
		t.Fatalf("unexpected debounce: %v", cfg.Review.ScrollDebounce)
	}
	if cfg.Adapter.Timeout != 8*time.Second {
		t.Fatalf("unexpected adapter timeout default: %v", cfg.Adapter.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level default: %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverridesWinOverYAML(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
adapter:
  api_key: yaml-key
  moderator_user_id: yaml-mod
  moderator_token: yaml-token
  timeout: 3s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	t.Setenv("API_KEY", "env-key")
	t.Setenv("ADAPTER_TIMEOUT", "12s")
	t.Setenv("REVIEW_PAGE_SIZE", "50")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Adapter.APIKey != "env-key" {
		t.Fatalf("expected env override, got %q", cfg.Adapter.APIKey)
	}
	if cfg.Adapter.ModeratorUserID != "yaml-mod" {
		t.Fatalf("expected yaml value, got %q", cfg.Adapter.ModeratorUserID)
	}
	if cfg.Adapter.Timeout != 12*time.Second {
		t.Fatalf("unexpected adapter timeout: %v", cfg.Adapter.Timeout)
	}
	if cfg.Review.PageSize != 50 {
		t.Fatalf("unexpected page size: %d", cfg.Review.PageSize)
	}
}

func TestLoadFailsWithoutCredentials(t *testing.T) {
	clearConfigEnv(t)

	cases := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing api key",
			env: map[string]string{
				"MODERATOR_USER_ID": "mod-1",
				"MODERATOR_TOKEN":   "token-1",
			},
		},
		{
			name: "missing moderator user id",
			env: map[string]string{
				"API_KEY":         "key-1",
				"MODERATOR_TOKEN": "token-1",
			},
		},
		{
			name: "missing moderator token",
			env: map[string]string{
				"API_KEY":           "key-1",
				"MODERATOR_USER_ID": "mod-1",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			if _, err := Load(""); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadIgnoresMissingConfigFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_KEY", "key-1")
	t.Setenv("MODERATOR_USER_ID", "mod-1")
	t.Setenv("MODERATOR_TOKEN", "token-1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.HTTP.Addr)
	}
}
