package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

// writeConfig writes a temporary config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
security:
  jwt:
    secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Path != ":memory:" {
		t.Errorf("default database path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("default api port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Security.JWT.AccessTokenTTL != 15 {
		t.Errorf("default access TTL = %d, want 15", cfg.Security.JWT.AccessTokenTTL)
	}
	if cfg.Security.JWT.RefreshTokenTTL != 720 {
		t.Errorf("default refresh TTL = %d, want 720", cfg.Security.JWT.RefreshTokenTTL)
	}
	if cfg.Security.MFA.DemoCode != "123456" {
		t.Errorf("default MFA code = %q, want 123456", cfg.Security.MFA.DemoCode)
	}
	if cfg.DemoData.AccessLogDays != 30 {
		t.Errorf("default access log days = %d, want 30", cfg.DemoData.AccessLogDays)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
api:
  port: 9000
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail without a JWT secret")
	}
	if !strings.Contains(err.Error(), "security.jwt.secret") {
		t.Errorf("error should mention jwt secret, got: %v", err)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	path := writeConfig(t, `
security:
  jwt:
    secret: "too-short"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should reject a short JWT secret")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
security:
  jwt:
    secret: "`+testSecret+`"
`)

	t.Setenv("PORTAL_API_HOST", "127.0.0.1")
	t.Setenv("PORTAL_COOKIE_SECURE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("env override not applied, host = %q", cfg.API.Host)
	}
	if !cfg.Security.Cookies.Secure {
		t.Error("PORTAL_COOKIE_SECURE=true should set cookies.secure")
	}
}

func TestValidate_TokenLifetimes(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWT.Secret = testSecret
	cfg.Security.JWT.AccessTokenTTL = 720 * 60 // equal to refresh lifetime

	if err := cfg.Validate(); err == nil {
		t.Error("access TTL >= refresh TTL should fail validation")
	}
}

func TestValidate_MFACodeLength(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWT.Secret = testSecret
	cfg.Security.MFA.DemoCode = "1234"

	if err := cfg.Validate(); err == nil {
		t.Error("4-digit MFA code should fail validation")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
