package cmd

import (
	"fmt"
	"strings"

	"github.com/Azhovan/envcheck"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the CLI defaults read from the environment.
type Config struct {
	EnvFile     string `env:"ENVCHECK_FILE" envDefault:".env"`
	ErrorPrefix string `env:"ENVCHECK_ERROR_PREFIX" envDefault:"[ENV-CHECKER]"`
	LogLevel    string `env:"ENVCHECK_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"ENVCHECK_LOG_FORMAT" envDefault:"console"`
}

// LoadConfig parses Config from the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.EnvFile == "" {
		c.EnvFile = envcheck.DefaultEnvFile
	}
	if c.ErrorPrefix == "" {
		c.ErrorPrefix = envcheck.DefaultErrorPrefix
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("ENVCHECK_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("ENVCHECK_LOG_LEVEL: %w", err)
	}

	return nil
}

// NewLogger builds a logger writing to stderr at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if strings.ToLower(c.LogFormat) == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         strings.ToLower(c.LogFormat),
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
