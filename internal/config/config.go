package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	Log      LogConfig      `yaml:"log"`
	Bot      BotConfig      `yaml:"bot"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Ops      OpsConfig      `yaml:"ops"`
	Rewards  RewardsConfig  `yaml:"rewards"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type BotConfig struct {
	Token              string `yaml:"token"`
	PollTimeoutSeconds int    `yaml:"poll_timeout_seconds"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type OpsConfig struct {
	Addr string `yaml:"addr"`
}

// RewardsConfig holds the coin economy and the age validation bounds.
type RewardsConfig struct {
	WelcomeCoins    int64 `yaml:"welcome_coins"`
	ReferralCoins   int64 `yaml:"referral_coins"`
	CompletionCoins int64 `yaml:"completion_coins"`
	AgeMin          int   `yaml:"age_min"`
	AgeMax          int   `yaml:"age_max"`
}

func Default() Config {
	return Config{
		Env: "dev",
		Log: LogConfig{
			Level: "info",
		},
		Bot: BotConfig{
			Token:              "",
			PollTimeoutSeconds: 30,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
		Postgres: PostgresConfig{
			DSN: "",
		},
		Ops: OpsConfig{
			Addr: ":8091",
		},
		Rewards: RewardsConfig{
			WelcomeCoins:    20,
			ReferralCoins:   10,
			CompletionCoins: 50,
			AgeMin:          11,
			AgeMax:          24,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if err := overrideInt("BOT_POLL_TIMEOUT", &cfg.Bot.PollTimeoutSeconds); err != nil {
		return err
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}

	if v := os.Getenv("OPS_ADDR"); v != "" {
		cfg.Ops.Addr = v
	}

	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s int: %w", key, err)
	}
	*target = n
	return nil
}
