// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseServerFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := ParseServerFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.WatchInterval != DefaultWatchInterval {
		t.Errorf("expected default watch interval, got %v", cfg.WatchInterval)
	}
}

func TestParseServerFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SECRET", "env-secret")

	cfg, err := ParseServerFlags([]string{"-p", "8080", "-d", "file:test.db", "--session-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SessionSecret != "s1" {
		t.Errorf("CLI should override env: expected s1, got %s", cfg.SessionSecret)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseServerFlags_Errors(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := ParseServerFlags([]string{}); err == nil {
		t.Error("expected error when SESSION_SECRET is missing")
	}

	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("PORT", "abc")
	if _, err := ParseServerFlags([]string{}); err == nil {
		t.Error("expected error for invalid PORT")
	}

	t.Setenv("PORT", "")
	if _, err := ParseServerFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestResolveClient_Defaults(t *testing.T) {
	t.Setenv("LIVEVOTE_URL", "")
	t.Setenv("LIVEVOTE_LOG", "")

	var cfg Config
	if err := cfg.ResolveClient(); err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("expected %s, got %s", DefaultServerURL, cfg.ServerURL)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("expected %s, got %s", DefaultLogFile, cfg.LogFile)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("LIVEVOTE_URL", "")
	os.Unsetenv("LIVEVOTE_URL")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LIVEVOTE_URL=http://votes.example:9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("LIVEVOTE_URL"); got != "http://votes.example:9000" {
		t.Errorf("expected value from .env, got %q", got)
	}

	// Missing file is fine
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}
