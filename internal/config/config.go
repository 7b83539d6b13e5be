package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr    string        `mapstructure:"SERVER_ADDR"`
	SearchDepth   int           `mapstructure:"SEARCH_DEPTH"`
	MaxDepth      int           `mapstructure:"MAX_DEPTH"`
	MatchMaxDepth int           `mapstructure:"MATCH_MAX_DEPTH"`
	MatchTimeout  time.Duration `mapstructure:"MATCH_TIMEOUT"`
	MaxBodyBytes  int64         `mapstructure:"MAX_BODY_BYTES"`
	Workers       int           `mapstructure:"WORKERS"`
	MaxPlies      int           `mapstructure:"MAX_PLIES"`
	MatchHistory  int           `mapstructure:"MATCH_HISTORY"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	LogFormat     string        `mapstructure:"LOG_FORMAT"`
	WebDir        string        `mapstructure:"WEB_DIR"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDR", ":2888")
	v.SetDefault("SEARCH_DEPTH", 5)
	v.SetDefault("MAX_DEPTH", 8)
	v.SetDefault("MATCH_MAX_DEPTH", 5)
	v.SetDefault("MATCH_TIMEOUT", 30*time.Second)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("WORKERS", 0)
	v.SetDefault("MAX_PLIES", 200)
	v.SetDefault("MATCH_HISTORY", 256)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("WEB_DIR", "")
}

// Setup reads cfgPath when it is non-empty, then lets OSKA_* environment variables
// override any key.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("OSKA")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SearchDepth < 1 {
		return fmt.Errorf("SEARCH_DEPTH must be >= 1, got %d", c.SearchDepth)
	}
	if c.MaxDepth < c.SearchDepth {
		return fmt.Errorf("MAX_DEPTH (%d) must be >= SEARCH_DEPTH (%d)", c.MaxDepth, c.SearchDepth)
	}
	if c.MatchTimeout <= 0 {
		return fmt.Errorf("MATCH_TIMEOUT must be positive, got %s", c.MatchTimeout)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}
