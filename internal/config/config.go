// Package config defines the YAML-serializable configuration shared by the
// etl and analyze binaries.
//
// Every field has a default, so both binaries run without a config file:
//
//	job: movies_etl
//	source:
//	  path: data/raw/movies_raw.csv
//	storage:
//	  kind: sqlite
//	  dsn: data/warehouse/movies.db
//	  table: movies_clean
//
// A file only needs the keys it changes; Load overlays it onto Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the fixed layout of the pipeline.
const (
	DefaultJob       = "movies_etl"
	DefaultInput     = "data/raw/movies_raw.csv"
	DefaultDSN       = "data/warehouse/movies.db"
	DefaultTable     = "movies_clean"
	DefaultStorage   = "sqlite"
	DefaultBatchSize = 500
)

// Config is the top-level configuration document.
type Config struct {
	// Job labels metrics and log lines for this run.
	Job       string          `yaml:"job"`
	Source    SourceConfig    `yaml:"source"`
	Transform TransformConfig `yaml:"transform"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

// SourceConfig locates and describes the input CSV.
type SourceConfig struct {
	// Path is the local filesystem path of the CSV.
	Path string `yaml:"path"`

	// Comma is the single-character field delimiter; empty means ",".
	Comma string `yaml:"comma"`

	// NullValues overrides the cell spellings read as null. Empty keeps the
	// parser defaults.
	NullValues []string `yaml:"null_values"`
}

// TransformConfig holds the optional parts of the transform chain.
type TransformConfig struct {
	Dedupe DedupeConfig `yaml:"dedupe"`
}

// DedupeConfig enables de-duplication when Keys is non-empty.
type DedupeConfig struct {
	Keys   []string `yaml:"keys"`
	Policy string   `yaml:"policy"`
}

// StorageConfig selects the relational store.
type StorageConfig struct {
	// Kind is the registered backend name: "sqlite" or "postgres".
	Kind string `yaml:"kind"`

	// DSN is the SQLite file path or a Postgres connection string.
	DSN string `yaml:"dsn"`

	// Table is the destination table name.
	Table string `yaml:"table"`

	// BatchSize is the number of rows per insert batch.
	BatchSize int `yaml:"batch_size"`
}

// MetricsConfig selects the metrics backend.
type MetricsConfig struct {
	// Backend is "none", "pushgateway", or "datadog".
	Backend        string   `yaml:"backend"`
	PushgatewayURL string   `yaml:"pushgateway_url"`
	DatadogAddr    string   `yaml:"datadog_addr"`
	Namespace      string   `yaml:"namespace"`
	Tags           []string `yaml:"tags"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Job:    DefaultJob,
		Source: SourceConfig{Path: DefaultInput},
		Storage: StorageConfig{
			Kind:      DefaultStorage,
			DSN:       DefaultDSN,
			Table:     DefaultTable,
			BatchSize: DefaultBatchSize,
		},
		Metrics: MetricsConfig{Backend: "none"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path and overlays it onto Default. Unknown
// keys are rejected.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse overlays YAML document b onto Default.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// CommaRune returns the configured delimiter as a rune, or 0 for the default.
func (s SourceConfig) CommaRune() rune {
	for _, r := range s.Comma {
		return r
	}
	return 0
}
