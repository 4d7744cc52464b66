package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("PORTAL_CONFIG")
	defer os.Setenv("PORTAL_CONFIG", originalEnv)

	os.Setenv("PORTAL_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingJWTSecret verifies config validation rejects a config
// without a JWT secret.
func TestRun_MissingJWTSecret(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database:
  path: ":memory:"

api:
  host: "127.0.0.1"
  port: 18080

security:
  jwt:
    secret: ""
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	originalEnv := os.Getenv("PORTAL_CONFIG")
	defer os.Setenv("PORTAL_CONFIG", originalEnv)
	os.Setenv("PORTAL_CONFIG", configPath)
	os.Unsetenv("PORTAL_JWT_SECRET")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail without a JWT secret")
	}
}

// TestGetConfigPath verifies the environment override.
func TestGetConfigPath(t *testing.T) {
	originalEnv := os.Getenv("PORTAL_CONFIG")
	defer os.Setenv("PORTAL_CONFIG", originalEnv)

	os.Unsetenv("PORTAL_CONFIG")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	os.Setenv("PORTAL_CONFIG", "/tmp/custom.yaml")
	if got := getConfigPath(); got != "/tmp/custom.yaml" {
		t.Errorf("getConfigPath() = %q, want override", got)
	}
}
