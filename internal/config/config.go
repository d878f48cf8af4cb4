// Package config loads application settings from defaults, an optional
// config file and AQ_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type Config struct {
	DBPath   string         `mapstructure:"db_path" env:"AQ_DB_PATH"`
	Log      LogConfig      `mapstructure:"log"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Identity IdentityConfig `mapstructure:"identity"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" env:"AQ_LOG_LEVEL"`
	File       string `mapstructure:"file" env:"AQ_LOG_FILE"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" env:"AQ_LOG_MAX_SIZE_MB"`
	MaxBackups int    `mapstructure:"max_backups" env:"AQ_LOG_MAX_BACKUPS"`
	MaxAgeDays int    `mapstructure:"max_age_days" env:"AQ_LOG_MAX_AGE_DAYS"`
	Console    bool   `mapstructure:"console" env:"AQ_LOG_CONSOLE"`
}

type RemoteConfig struct {
	Backend       string `mapstructure:"backend" env:"AQ_REMOTE_BACKEND"`
	MongoURI      string `mapstructure:"mongo_uri" env:"AQ_MONGO_URI"`
	MongoDatabase string `mapstructure:"mongo_database" env:"AQ_MONGO_DATABASE"`
	RedisAddr     string `mapstructure:"redis_addr" env:"AQ_REDIS_ADDR"`
	RedisPassword string `mapstructure:"redis_password" env:"AQ_REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"redis_db" env:"AQ_REDIS_DB"`
}

type SyncConfig struct {
	Debounce  time.Duration `mapstructure:"debounce" env:"AQ_SYNC_DEBOUNCE"`
	OpTimeout time.Duration `mapstructure:"op_timeout" env:"AQ_SYNC_OP_TIMEOUT"`
	Attempts  int           `mapstructure:"attempts" env:"AQ_SYNC_ATTEMPTS"`
}

type IdentityConfig struct {
	UID         string `mapstructure:"uid" env:"AQ_USER_ID"`
	DisplayName string `mapstructure:"display_name" env:"AQ_USER_NAME"`
	Email       string `mapstructure:"email" env:"AQ_USER_EMAIL"`
	Token       string `mapstructure:"token" env:"AQ_TOKEN"`
	TokenSecret string `mapstructure:"token_secret" env:"AQ_TOKEN_SECRET"`
}

type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key" env:"AQ_LLM_API_KEY"`
	BaseURL string        `mapstructure:"base_url" env:"AQ_LLM_BASE_URL"`
	Model   string        `mapstructure:"model" env:"AQ_LLM_MODEL"`
	Timeout time.Duration `mapstructure:"timeout" env:"AQ_LLM_TIMEOUT"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Remote: RemoteConfig{
			Backend:       BackendNone,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "aura_quest",
			RedisAddr:     "localhost:6379",
		},
		Sync: SyncConfig{
			Debounce:  timeouts.SyncDebounce,
			OpTimeout: timeouts.RemoteOp,
			Attempts:  3,
		},
		LLM: LLMConfig{
			BaseURL: "https://api.deepseek.com/v1",
			Model:   "deepseek-chat",
			Timeout: timeouts.Generate,
		},
	}
	if dir, err := appDir(); err == nil {
		cfg.DBPath = filepath.Join(dir, "aq.db")
		cfg.Log.File = filepath.Join(dir, "logs", "aq.log")
	}
	return cfg
}

// Load layers defaults, the config file at path, and the environment. An
// empty path looks for aq.{toml,yaml,json} in the app directory; a missing
// file there is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("aq")
		if dir, err := appDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays AQ_* environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	c.Remote.Backend = strings.ToLower(strings.TrimSpace(c.Remote.Backend))
	if c.Remote.Backend == "" {
		c.Remote.Backend = BackendNone
	}
	switch c.Remote.Backend {
	case BackendNone, BackendMemory, BackendMongo, BackendRedis:
	default:
		return fmt.Errorf("unknown remote backend %q", c.Remote.Backend)
	}
	if c.Sync.Debounce < 0 {
		return fmt.Errorf("sync debounce must not be negative")
	}
	if c.Sync.Attempts < 1 {
		c.Sync.Attempts = 1
	}
	if c.Sync.OpTimeout <= 0 {
		c.Sync.OpTimeout = timeouts.RemoteOp
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = timeouts.Generate
	}
	return nil
}

func appDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".aura-quest"), nil
}
