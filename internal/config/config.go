package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"

	"github.com/kubev2v/taskrunner/internal/util"
	srvErrors "github.com/kubev2v/taskrunner/pkg/errors"
)

const dbFileName = "taskrunner.duckdb"

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Runner Target Authentication Store

type Configuration struct {
	Server    Server         `debugmap:"visible-format"`
	Runner    Runner         `debugmap:"visible-format"`
	Target    Target         `debugmap:"visible-format"`
	Auth      Authentication `debugmap:"visible-format"`
	Store     Store          `debugmap:"visible-format"`
	LogFormat string         `debugmap:"visible" default:"console"`
	LogLevel  string         `debugmap:"visible" default:"info"`
}

type Server struct {
	ServerMode      string        `debugmap:"visible" default:"dev"`
	HTTPPort        int           `debugmap:"visible" default:"8000"`
	ShutdownTimeout time.Duration `debugmap:"visible-format" default:"10s"`
}

type Runner struct {
	QueueConcurrency int `debugmap:"visible" default:"10"`
	CargoBatchSize   int `debugmap:"visible" default:"10"`
	CargoConcurrency int `debugmap:"visible" default:"1"`
}

type Target struct {
	URL           string        `debugmap:"visible"`
	JWTFilePath   string        `debugmap:"visible"`
	MaxTries      uint          `debugmap:"visible" default:"3"`
	RetryInterval time.Duration `debugmap:"visible-format" default:"200ms"`
	Timeout       time.Duration `debugmap:"visible-format" default:"30s"`
}

type Authentication struct {
	Enabled        bool   `debugmap:"visible" default:"false"`
	SecretFilePath string `debugmap:"visible"`
}

type Store struct {
	DataFolder string        `debugmap:"visible"`
	Retention  time.Duration `debugmap:"visible-format" default:"168h"`
}

// NewConfigurationWithDefaults returns a Configuration with every default applied.
func NewConfigurationWithDefaults() (*Configuration, error) {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("failed to set configuration defaults: %w", err)
	}
	return c, nil
}

// DBPath is the DuckDB file inside DataFolder, or an in-memory database when
// no folder is configured.
func (s Store) DBPath() string {
	if s.DataFolder == "" {
		return ":memory:"
	}
	return filepath.Join(s.DataFolder, dbFileName)
}

func (c *Configuration) Validate() error {
	var errs []error

	if !util.Contains([]string{"dev", "prod"}, c.Server.ServerMode) {
		errs = append(errs, srvErrors.NewValidationError("server.mode", "must be dev or prod"))
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		errs = append(errs, srvErrors.NewValidationError("server.port", "must be between 1 and 65535"))
	}
	if c.Runner.QueueConcurrency < 1 {
		errs = append(errs, srvErrors.NewInvalidConcurrencyError(c.Runner.QueueConcurrency))
	}
	if c.Runner.CargoBatchSize < 1 {
		errs = append(errs, srvErrors.NewInvalidBatchSizeError(c.Runner.CargoBatchSize))
	}
	if c.Runner.CargoConcurrency < 1 {
		errs = append(errs, srvErrors.NewInvalidConcurrencyError(c.Runner.CargoConcurrency))
	}
	if c.Target.URL == "" {
		errs = append(errs, srvErrors.NewValidationError("target.url", "is required"))
	}
	if c.Auth.Enabled && c.Auth.SecretFilePath == "" {
		errs = append(errs, srvErrors.NewValidationError("auth.secret-file", "is required when authentication is enabled"))
	}
	if !util.Contains([]string{"console", "json"}, c.LogFormat) {
		errs = append(errs, srvErrors.NewValidationError("log-format", "must be console or json"))
	}
	if !util.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		errs = append(errs, srvErrors.NewValidationError("log-level", "must be debug, info, warn or error"))
	}

	return errors.Join(errs...)
}
