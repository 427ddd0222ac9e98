// Package config loads quest-journal settings from flags, environment,
// an optional YAML file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. QUEST_JOURNAL_DB.
const EnvPrefix = "QUEST_JOURNAL"

// Config is the resolved configuration shared by every command.
type Config struct {
	DB                  string        `mapstructure:"db"`
	Debug               bool          `mapstructure:"debug"`
	Format              string        `mapstructure:"format"` // json | text
	TickInterval        time.Duration `mapstructure:"tick_interval"`
	HistoryKeep         int           `mapstructure:"history_keep"`
	DefaultGameLanguage string        `mapstructure:"default_game_language"`
}

// Dir returns the per-user directory holding the database and config file.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quest-journal")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the configuration. An explicit path must exist; the default
// path is optional. Flags that were set on the command line win over
// everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("db", filepath.Join(Dir(), "journal.db"))
	v.SetDefault("debug", false)
	v.SetDefault("format", "text")
	v.SetDefault("tick_interval", "10s")
	v.SetDefault("history_keep", 20)
	v.SetDefault("default_game_language", "en")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, name := range []string{"db", "debug", "format"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("config: format must be json or text, got %q", c.Format)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("config: tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.HistoryKeep < 0 {
		return fmt.Errorf("config: history_keep must not be negative, got %d", c.HistoryKeep)
	}
	return nil
}
