// Package config loads the runtime's tunable constants — the
// compile-time values spec.md's §6 lists as "expected from the
// environment" (POOL_SIZE, ACTOR_QUEUE_LIMIT, CAST_LIMIT) — the way
// chatee-go's commonlib/config loads a typed Config via viper: defaults
// set first, then an optional file, then environment variables layered
// on top.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the three constants spec.md requires the environment to
// supply before a System can be built.
type Config struct {
	PoolSize   int `json:"pool_size" mapstructure:"pool_size"`
	QueueLimit int `json:"queue_limit" mapstructure:"queue_limit"`
	CastLimit  int `json:"cast_limit" mapstructure:"cast_limit"`
}

// DefaultConfig returns the values bollywood.Option defaults already
// fall back to, so a caller that skips config.Load entirely still gets a
// runnable system.
func DefaultConfig() Config {
	return Config{
		PoolSize:   8,
		QueueLimit: 256,
		CastLimit:  1 << 16,
	}
}

// Load builds a Config from, in increasing priority: DefaultConfig, an
// optional file at configPath (or ./bollywood.yaml / ./config/bollywood.yaml
// if configPath is empty), then BOLLYWOOD_-prefixed environment
// variables.
func Load(configPath string) (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("pool_size", def.PoolSize)
	v.SetDefault("queue_limit", def.QueueLimit)
	v.SetDefault("cast_limit", def.CastLimit)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bollywood")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("BOLLYWOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("bollywood/config: reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("bollywood/config: unmarshalling config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports whether every field holds a usable positive value.
func (c Config) Validate() error {
	if c.PoolSize <= 0 {
		return fmt.Errorf("bollywood/config: pool_size must be positive, got %d", c.PoolSize)
	}
	if c.QueueLimit <= 0 {
		return fmt.Errorf("bollywood/config: queue_limit must be positive, got %d", c.QueueLimit)
	}
	if c.CastLimit <= 0 {
		return fmt.Errorf("bollywood/config: cast_limit must be positive, got %d", c.CastLimit)
	}
	return nil
}
