// Package config loads application configuration via viper and
// initializes the global zap logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anviksha/anviksha/internal/detect"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig   `yaml:"store" mapstructure:"store"`
	Index  IndexConfig   `yaml:"index" mapstructure:"index"`
	Detect detect.Config `yaml:"detect" mapstructure:"detect"`
	Server ServerConfig  `yaml:"server" mapstructure:"server"`
	Log    LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the dataset store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// IndexConfig configures the CPI index table and base year.
type IndexConfig struct {
	BaseYear int    `yaml:"base_year" mapstructure:"base_year"`
	File     string `yaml:"file" mapstructure:"file"` // optional YAML override of the built-in series
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RatePerSecond  float64  `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "json" or "console"
}

// Load reads configuration from anviksha.yaml (current directory or
// ~/.anviksha/) and ANVIKSHA_* environment variables, applying
// defaults for everything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("anviksha")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.anviksha")

	// Environment
	v.SetEnvPrefix("ANVIKSHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "anviksha.db")
	v.SetDefault("index.base_year", 2024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 10)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("detect.iqr_multiplier", 1.5)
	v.SetDefault("detect.low_bidder_max", 3)
	v.SetDefault("detect.high_value_quantile", 0.75)
	v.SetDefault("detect.yoy_jump_ratio", 1.5)
	v.SetDefault("detect.descriptive_share_pct", 20)
	v.SetDefault("detect.dominance_share_pct", 30)
	v.SetDefault("detect.dominance_count_factor", 2)
	v.SetDefault("detect.z_threshold", 2.5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
