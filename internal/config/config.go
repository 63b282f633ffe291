package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultDBPath   = "database.db"
	DefaultAddr     = "localhost:8443"
	DefaultLogLevel = "info"
)

// Config holds the settings shared by every entry point
type Config struct {
	DBPath   string `mapstructure:"db"`
	Addr     string `mapstructure:"addr"`
	CertFile string `mapstructure:"cert"`
	KeyFile  string `mapstructure:"key"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from cfgFile when given, otherwise from an
// optional gardenbook.yaml in the working directory or
// $HOME/.config/gardenbook. GARDENBOOK_* environment variables override the
// file.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("db", DefaultDBPath)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("cert", "")
	v.SetDefault("key", "")
	v.SetDefault("log_level", DefaultLogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gardenbook"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("gardenbook")
	}

	v.SetEnvPrefix("GARDENBOOK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Level maps the configured log level to a slog.Level; unknown values are
// treated as info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds the text logger on stderr used by the commands
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
}

// TLS reports whether both certificate and key are configured
func (c *Config) TLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}
