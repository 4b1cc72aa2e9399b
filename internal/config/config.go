// Package config loads runtime settings via viper, binding the
// qasmplay.yaml file and QASMPLAY_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every setting the executor, server and CLI need at
// startup.
type Config struct {
	Shots   int    `mapstructure:"shots"`
	Workers int    `mapstructure:"workers"`
	Seed    int64  `mapstructure:"seed"`
	Port    int    `mapstructure:"port"`
	Debug   bool   `mapstructure:"debug"`
	Backend string `mapstructure:"backend"`
}

// Load reads qasmplay.yaml from the current directory (if present),
// overlays QASMPLAY_* environment variables, and returns the resolved
// Config. A missing config file is not an error — the defaults below
// apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("qasmplay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("QASMPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("shots", 1024)
	v.SetDefault("workers", 0)
	v.SetDefault("seed", 1)
	v.SetDefault("port", 8080)
	v.SetDefault("debug", false)
	v.SetDefault("backend", "statevector")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
