// Package config loads runtime settings from the environment, an optional
// .env file, and an optional nutrifit.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "NUTRIFIT"

type Config struct {
	Addr            string        `mapstructure:"addr"`
	DBPath          string        `mapstructure:"db_path"`
	Timezone        string        `mapstructure:"timezone"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	Workers         int           `mapstructure:"workers"`
	QueueSize       int           `mapstructure:"queue_size"`
	WSOrigins       []string      `mapstructure:"ws_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	S3Prefix    string `mapstructure:"s3_prefix"`

	OpenAIKey     string `mapstructure:"openai_api_key"`
	OpenAIModel   string `mapstructure:"openai_model"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	// Location is Timezone resolved by Load.
	Location *time.Location `mapstructure:"-"`
}

var defaults = map[string]any{
	"addr":             ":8080",
	"db_path":          "nutrifit.db",
	"timezone":         "UTC",
	"log_level":        "info",
	"log_format":       "text",
	"jwt_secret":       "",
	"token_ttl":        72 * time.Hour,
	"workers":          4,
	"queue_size":       256,
	"ws_origins":       []string{},
	"shutdown_timeout": 10 * time.Second,
	"s3_endpoint":      "",
	"s3_bucket":        "",
	"s3_region":        "",
	"s3_access_key":    "",
	"s3_secret_key":    "",
	"s3_prefix":        "exports/",
	"openai_api_key":   "",
	"openai_model":     "",
	"openai_base_url":  "",
}

// Load reads .env if present, then nutrifit.yaml from the given directories
// (the working directory when none are given), then NUTRIFIT_* environment
// variables, which win.
func Load(dirs ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigName("nutrifit")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("%s_JWT_SECRET is required", envPrefix)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.QueueSize < 1 {
		c.QueueSize = 1
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaults["token_ttl"].(time.Duration)
	}
	return nil
}
