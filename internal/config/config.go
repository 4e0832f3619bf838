package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds service configuration loaded from an optional config file
// and environment variables.
type Config struct {
	Env      string `mapstructure:"env"`       // current application environment (local, dev, prod etc)
	HTTPAddr string `mapstructure:"http_addr"` // listen address for the HTTP server
	Mongo    Mongo  `mapstructure:"mongo"`
	Redis    Redis  `mapstructure:"redis"`
	Rabbit   Rabbit `mapstructure:"rabbit"`
	Quiz     Quiz   `mapstructure:"quiz"`

	CORSOrigins []string `mapstructure:"cors_origins"`
}

type Mongo struct {
	URI      string `mapstructure:"-"` // connection string loaded from environment
	Database string `mapstructure:"database"`
}

type Redis struct {
	Addr     string `mapstructure:"-"` // address loaded from environment
	Password string `mapstructure:"-"`
	DB       int    `mapstructure:"db"`
}

// Rabbit is optional; with an empty URI the service runs without events.
type Rabbit struct {
	URI      string `mapstructure:"-"`
	Exchange string `mapstructure:"exchange"`
}

// Quiz carries the engine's tuning knobs.
type Quiz struct {
	SessionTTL       time.Duration `mapstructure:"session_ttl"`       // hard TTL on session records
	InactivityWindow time.Duration `mapstructure:"inactivity_window"` // lazy-expiry threshold
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("http_addr", ":8086")
	v.SetDefault("mongo.database", "slang_quiz")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rabbit.exchange", "slang.events")
	v.SetDefault("quiz.session_ttl", "1h")
	v.SetDefault("quiz.inactivity_window", "10m")
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("mongo_uri", "MONGO_URI")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("rabbitmq_uri", "RABBITMQ_URI")
	_ = v.BindEnv("rabbit.exchange", "RABBITMQ_EXCHANGE")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http_addr", "HTTP_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Mongo.URI = v.GetString("mongo_uri")
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("%w: MONGO_URI", ErrMissingEnvironmentVariables)
	}

	cfg.Redis.Addr = v.GetString("redis_addr")
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("%w: REDIS_ADDR", ErrMissingEnvironmentVariables)
	}
	cfg.Redis.Password = v.GetString("redis_password")

	cfg.Rabbit.URI = v.GetString("rabbitmq_uri")

	return &cfg, nil
}
