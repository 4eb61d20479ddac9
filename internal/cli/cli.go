// Package cli holds the flag handling shared by the etl and analyze
// commands: config file loading, per-flag overrides, validation output, and
// logger and metrics setup.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"movieetl/internal/config"
	"movieetl/internal/logging"
	"movieetl/internal/metrics"
	"movieetl/internal/metrics/setup"
)

// ErrInvalidConfig is returned by Check when any issue is an error.
var ErrInvalidConfig = errors.New("configuration is invalid")

// loggedError marks an error that was already written through the command's
// logger.
type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

// Fail writes err to log at error level and returns it marked as reported,
// so Report does not print it a second time.
func Fail(log *zap.Logger, err error) error {
	if err == nil {
		return nil
	}
	log.Error(err.Error())
	return loggedError{err: err}
}

// Report prints err to w unless Fail already logged it. Errors raised before
// the logger exists (flag parsing, config loading) take this path.
func Report(w io.Writer, err error) {
	var le loggedError
	if errors.As(err, &le) {
		return
	}
	fmt.Fprintf(w, "ERROR | %v\n", err)
}

// Flags are the command-line overrides common to both commands. A flag
// only overrides the config when it was set explicitly.
type Flags struct {
	ConfigPath     string
	Input          string
	DSN            string
	Table          string
	Storage        string
	LogLevel       string
	MetricsBackend string
	Validate       bool
}

// Register binds the flags on cmd. The ETL-only flags (--input,
// --metrics-backend) are added when etl is true.
func (f *Flags) Register(cmd *cobra.Command, etl bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file (optional)")
	fs.StringVar(&f.DSN, "db", config.DefaultDSN, "SQLite file path or Postgres connection string")
	fs.StringVar(&f.Table, "table", config.DefaultTable, "destination table")
	fs.StringVar(&f.Storage, "storage", config.DefaultStorage, "storage backend: sqlite or postgres")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&f.Validate, "validate", false, "validate the configuration and exit")
	if etl {
		fs.StringVar(&f.Input, "input", config.DefaultInput, "raw movies CSV")
		fs.StringVar(&f.MetricsBackend, "metrics-backend", "none", "metrics backend: none, pushgateway, datadog")
	}
}

// Config loads the config file, if any, and applies explicitly set flags.
func (f *Flags) Config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(f.ConfigPath); err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Source.Path = f.Input
	}
	if changed("db") {
		cfg.Storage.DSN = f.DSN
	}
	if changed("table") {
		cfg.Storage.Table = f.Table
	}
	if changed("storage") {
		cfg.Storage.Kind = f.Storage
	}
	if changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if changed("metrics-backend") {
		cfg.Metrics.Backend = f.MetricsBackend
	}
	return cfg, nil
}

// Check writes every validation issue to w and returns ErrInvalidConfig if
// any of them is an error.
func Check(cfg config.Config, w io.Writer) error {
	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return ErrInvalidConfig
	}
	return nil
}

// Setup builds the logger and installs the configured metrics backend. The
// returned function flushes metrics and syncs the logger; call it once the
// command finishes.
func Setup(cfg config.Config) (*zap.Logger, func(), error) {
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	b, err := setup.Backend(cfg.Job, cfg.Metrics, log)
	if err != nil {
		return nil, nil, err
	}
	prev := metrics.SetBackend(b)

	return log, func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("metrics flush failed", zap.Error(err))
		}
		metrics.SetBackend(prev)
		_ = log.Sync()
	}, nil
}
