// Package config loads application configuration from an optional YAML
// file plus environment variables, in that precedence order.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Stats    StatsConfig    `mapstructure:"stats"`
}

type ServerConfig struct {
	Port           string  `mapstructure:"port"`
	GinMode        string  `mapstructure:"gin_mode"`
	RatePerSecond  float64 `mapstructure:"rate_per_second"`
	RateBurst      float64 `mapstructure:"rate_burst"`
	MaxUploadBytes int64   `mapstructure:"max_upload_bytes"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AnalysisConfig carries the analysis-engine knobs: which locale's signal
// tables the classifiers use, and the default business context applied
// until the user supplies their own.
type AnalysisConfig struct {
	SignalLocale string         `mapstructure:"signal_locale"`
	Business     BusinessConfig `mapstructure:"business"`
}

type BusinessConfig struct {
	ConversionRate  float64 `mapstructure:"conversion_rate"`
	TrialToPaidRate float64 `mapstructure:"trial_to_paid_rate"`
	ACV             float64 `mapstructure:"acv"`
	CompanyName     string  `mapstructure:"company_name"`
}

// AuditConfig controls the optional title/meta page audit.
type AuditConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
	MaxPages       int  `mapstructure:"max_pages"`
}

type StatsConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Load reads configuration: .env file if present, then config.yaml from
// the working directory or ./configs, then environment overrides like
// SERVER_PORT.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8082")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.rate_per_second", 2.0)
	v.SetDefault("server.rate_burst", 5.0)
	v.SetDefault("server.max_upload_bytes", int64(64<<20))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("analysis.signal_locale", "en")
	v.SetDefault("analysis.business.conversion_rate", 0.025)
	v.SetDefault("analysis.business.trial_to_paid_rate", 0.12)
	v.SetDefault("analysis.business.acv", 300.0)

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.timeout_seconds", 10)
	v.SetDefault("audit.max_pages", 10)

	v.SetDefault("stats.data_dir", "./data")
}
