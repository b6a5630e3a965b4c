package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Port            string `mapstructure:"port"`
	UpstreamURL     string `mapstructure:"upstream_url"`
	UpstreamTimeout int    `mapstructure:"upstream_timeout"` // in seconds, 0 = no client timeout
	DataFile        string `mapstructure:"data_file"`
	MatchMode       string `mapstructure:"match_mode"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"` // json or text
	Dev             bool   `mapstructure:"dev"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Port:        "8080",
		UpstreamURL: "https://api.lyrics.ovh",
		DataFile:    "lyricsearch.json",
		MatchMode:   "substring",
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// Timeout returns the upstream timeout as a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.UpstreamTimeout) * time.Second
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Load reads .env, an optional config.toml, and the environment, in
// increasing order of precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded, using system env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("$HOME/.config/lyricsearch/")
	v.AddConfigPath(".")

	defaults := DefaultConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("upstream_url", defaults.UpstreamURL)
	v.SetDefault("upstream_timeout", defaults.UpstreamTimeout)
	v.SetDefault("data_file", defaults.DataFile)
	v.SetDefault("match_mode", defaults.MatchMode)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("dev", defaults.Dev)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.UpstreamURL == "" {
		return errors.New("upstream_url must not be empty")
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream_timeout must not be negative, got %d", c.UpstreamTimeout)
	}
	switch c.MatchMode {
	case "substring", "exact", "fuzzy":
	default:
		return fmt.Errorf("unknown match_mode %q", c.MatchMode)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}
