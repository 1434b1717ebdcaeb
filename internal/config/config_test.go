package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
bot:
  poll_timeout_seconds: 45
redis:
  addr: redis-prod:6379
  db: 3
rewards:
  referral_coins: 15
  age_max: 22
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Bot.PollTimeoutSeconds != 45 {
		t.Fatalf("unexpected poll timeout: %d", cfg.Bot.PollTimeoutSeconds)
	}
	if cfg.Redis.Addr != "redis-prod:6379" || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Rewards.ReferralCoins != 15 {
		t.Fatalf("unexpected referral coins: %d", cfg.Rewards.ReferralCoins)
	}
	if cfg.Rewards.AgeMax != 22 {
		t.Fatalf("unexpected age max: %d", cfg.Rewards.AgeMax)
	}

	// Untouched sections keep their defaults.
	if cfg.Rewards.WelcomeCoins != 20 || cfg.Rewards.CompletionCoins != 50 {
		t.Fatalf("unexpected reward defaults: %+v", cfg.Rewards)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level: %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverridesWinOverYAML(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
bot:
  token: from-yaml
redis:
  addr: from-yaml:6379
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("REDIS_ADDR", "from-env:6379")
	t.Setenv("BOT_POLL_TIMEOUT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Bot.Token != "from-env" {
		t.Fatalf("unexpected bot token: %q", cfg.Bot.Token)
	}
	if cfg.Redis.Addr != "from-env:6379" {
		t.Fatalf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
	if cfg.Bot.PollTimeoutSeconds != 7 {
		t.Fatalf("unexpected poll timeout: %d", cfg.Bot.PollTimeoutSeconds)
	}
}

func TestLoadRejectsBadIntEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for malformed REDIS_DB")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL",
		"BOT_TOKEN", "BOT_POLL_TIMEOUT",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"POSTGRES_DSN", "OPS_ADDR",
	} {
		t.Setenv(key, "")
	}
}
