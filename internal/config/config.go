package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. NETAUDIT_LOG_LEVEL.
const EnvPrefix = "NETAUDIT"

type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Strict makes an aborted report exit non-zero.
	Strict bool `envconfig:"STRICT" default:"false"`

	IOThreshold           uint64 `envconfig:"IO_THRESHOLD" default:"10000000"`
	TopProcesses          int    `envconfig:"TOP_PROCESSES" default:"10"`
	ConnectionsPerProcess int    `envconfig:"CONNECTIONS_PER_PROCESS" default:"5"`
}

func Load() (*Config, error) {
	var conf Config
	if err := envconfig.Process(EnvPrefix, &conf); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	// The --log-format flag only accepts lower case.
	conf.LogFormat = strings.ToLower(conf.LogFormat)
	return &conf, nil
}

func (c *Config) Validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.TopProcesses <= 0 {
		return errors.New("top processes must be positive")
	}
	if c.ConnectionsPerProcess <= 0 {
		return errors.New("connections per process must be positive")
	}
	return nil
}
