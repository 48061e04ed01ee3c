package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the config file at path with APP_-prefixed env overrides.
// A missing file is not fatal: defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("session.period_seconds", 600)
	v.SetDefault("session.shot_clock_seconds", 24)
	v.SetDefault("session.timeouts_per_team", 7)
	v.SetDefault("session.foul_limit", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
