package config

import (
	"github.com/courtkeeper/courtside/internal/logger"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StorageConfig selects the session store. An empty DSN keeps sessions in
// process memory, which is the normal single-operator deployment.
type StorageConfig struct {
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// SessionConfig holds the default game format applied when a new session
// does not override it.
type SessionConfig struct {
	PeriodSeconds    int `mapstructure:"period_seconds"`
	ShotClockSeconds int `mapstructure:"shot_clock_seconds"`
	TimeoutsPerTeam  int `mapstructure:"timeouts_per_team"`
	FoulLimit        int `mapstructure:"foul_limit"`
}

type Config struct {
	Logger  logger.LoggerConfig `mapstructure:"logger"`
	Server  ServerConfig        `mapstructure:"server"`
	Storage StorageConfig       `mapstructure:"storage"`
	Session SessionConfig       `mapstructure:"session"`
}
