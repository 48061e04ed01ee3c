// Package logger builds the application zerolog.Logger from validated
// config. Everything downstream receives a ready logger and only adds
// module/component context.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string                 `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format         string                 `mapstructure:"format" validate:"oneof=json console"`
	TimeField      string                 `mapstructure:"time_field"`
	TimeFormat     string                 `mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string                 `mapstructure:"service_name"`
	ServiceVersion string                 `mapstructure:"service_version"`
	Env            string                 `mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller     bool                   `mapstructure:"with_caller"`
	DebugLogFile   string                 `mapstructure:"debug_log_file"`
	Fields         map[string]interface{} `mapstructure:"fields"`
}

// New validates the config, applies defaults and returns the root logger.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	cfg.setDefaults()

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return zerolog.Logger{}, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFormat(cfg.TimeFormat)

	writer := buildWriter(cfg)
	logger := zerolog.New(writer).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if len(cfg.Fields) > 0 {
		logger = logger.With().Fields(cfg.Fields).Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

// buildWriter picks the output: JSON to stdout for prod-like environments,
// console for humans in dev, with an optional debug file tee.
func buildWriter(cfg *LoggerConfig) io.Writer {
	if cfg.Format == "json" {
		return os.Stdout
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat(cfg.TimeFormat)}
	if cfg.DebugLogFile == "" || cfg.Level != "debug" {
		return console
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DebugLogFile), 0755); err != nil {
		return console
	}
	file, err := os.OpenFile(cfg.DebugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return console
	}
	return zerolog.MultiLevelWriter(console, file)
}

func timeFormat(name string) string {
	switch name {
	case "rfc3339":
		return time.RFC3339
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	default:
		return time.RFC3339Nano
	}
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "courtside"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
