package config

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"movieetl/internal/logging"
	"movieetl/internal/schema"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.table").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// StorageKinds lists the storage backends built into the binaries.
var StorageKinds = []string{"sqlite", "postgres"}

// identRe matches table names that can be interpolated into SQL unquoted.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate performs static checks over cfg. It never mutates cfg.
func Validate(cfg Config) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, format string, a ...any) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, a...)})
	}

	if strings.TrimSpace(cfg.Job) == "" {
		add(SeverityError, "job", "job must not be empty; it labels metrics for the run")
	}

	// Source.
	if strings.TrimSpace(cfg.Source.Path) == "" {
		add(SeverityError, "source.path", "source path must not be empty")
	}
	if n := utf8.RuneCountInString(cfg.Source.Comma); n > 1 {
		add(SeverityError, "source.comma", "delimiter must be a single character, got %q", cfg.Source.Comma)
	} else if r := cfg.Source.CommaRune(); r == '"' || r == '\n' || r == '\r' {
		add(SeverityError, "source.comma", "delimiter %q is not allowed", cfg.Source.Comma)
	}

	// Transform.
	known := map[string]struct{}{}
	for _, f := range schema.Fields {
		known[f.Name] = struct{}{}
	}
	for i, k := range cfg.Transform.Dedupe.Keys {
		if _, ok := known[k]; !ok {
			add(SeverityWarning, fmt.Sprintf("transform.dedupe.keys[%d]", i),
				"%q is not a movie column; it must exist in the input file", k)
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Transform.Dedupe.Policy)) {
	case "", "keep-first", "keep-last":
	default:
		add(SeverityError, "transform.dedupe.policy", "unknown policy %q (want keep-first or keep-last)", cfg.Transform.Dedupe.Policy)
	}
	if len(cfg.Transform.Dedupe.Keys) == 0 && cfg.Transform.Dedupe.Policy != "" {
		add(SeverityWarning, "transform.dedupe.policy", "policy is set but no keys are configured; dedupe is disabled")
	}

	// Storage.
	kindOK := false
	for _, k := range StorageKinds {
		if cfg.Storage.Kind == k {
			kindOK = true
		}
	}
	if !kindOK {
		add(SeverityError, "storage.kind", "unknown storage kind %q (want one of %s)", cfg.Storage.Kind, strings.Join(StorageKinds, ", "))
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		add(SeverityError, "storage.dsn", "storage dsn must not be empty")
	}
	if !identRe.MatchString(cfg.Storage.Table) {
		add(SeverityError, "storage.table", "table %q must be a plain identifier", cfg.Storage.Table)
	}
	switch {
	case cfg.Storage.BatchSize <= 0:
		add(SeverityError, "storage.batch_size", "batch_size must be > 0")
	case cfg.Storage.BatchSize > 100_000:
		add(SeverityWarning, "storage.batch_size", "batch_size %d is unusually large", cfg.Storage.BatchSize)
	}

	// Metrics.
	switch cfg.Metrics.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(cfg.Metrics.PushgatewayURL) == "" {
			add(SeverityError, "metrics.pushgateway_url", "pushgateway backend requires a URL")
		}
	case "datadog":
		if strings.TrimSpace(cfg.Metrics.DatadogAddr) == "" {
			add(SeverityError, "metrics.datadog_addr", "datadog backend requires an agent address")
		}
	default:
		add(SeverityWarning, "metrics.backend", "unknown metrics backend %q; metrics disabled", cfg.Metrics.Backend)
	}

	// Log.
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		add(SeverityError, "log.level", "%v", err)
	}

	return issues
}
