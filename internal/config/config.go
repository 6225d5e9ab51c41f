package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	BackendCSV      = "csv"
	BackendJSONL    = "jsonl"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var Backends = []string{BackendCSV, BackendJSONL, BackendSQLite, BackendPostgres}

type Config struct {
	Storage struct {
		Backend string `envconfig:"SPENDLOG_BACKEND" default:"csv" yaml:"backend"`
		// Data is the file for csv, jsonl and sqlite.
		Data string `envconfig:"SPENDLOG_DATA" default:"expenses.csv" yaml:"data"`
		DSN  string `envconfig:"SPENDLOG_DSN" yaml:"dsn"`
	} `yaml:"storage"`

	Log struct {
		Level string `envconfig:"SPENDLOG_LOG_LEVEL" default:"warn" yaml:"level"`
	} `yaml:"log"`
}

// Load reads the environment and then overlays the YAML file at path, if any.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	if !slices.Contains(Backends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf("invalid backend %q: must be one of %v", c.Storage.Backend, Backends))
	}

	switch c.Storage.Backend {
	case BackendPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("dsn is required for the postgres backend"))
		}
	case BackendCSV, BackendJSONL, BackendSQLite:
		if strings.TrimSpace(c.Storage.Data) == "" {
			errs = append(errs, fmt.Errorf("data path cannot be empty for the %s backend", c.Storage.Backend))
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", c.Log.Level)
	}

	return level, nil
}
