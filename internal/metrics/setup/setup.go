// Package setup builds the metrics backend named in the configuration.
package setup

import (
	"fmt"

	"go.uber.org/zap"

	"movieetl/internal/config"
	"movieetl/internal/metrics"
	"movieetl/internal/metrics/datadog"
	"movieetl/internal/metrics/prompush"
)

// Backend returns the backend for cfg.Backend. "none", "" and unknown names
// yield metrics.Nop; unknown names are logged as a warning.
func Backend(job string, cfg config.MetricsConfig, log *zap.Logger) (metrics.Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case "", "none":
		return metrics.Nop{}, nil
	case "pushgateway":
		b, err := prompush.NewBackend(job, cfg.PushgatewayURL)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		return b, nil
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       cfg.DatadogAddr,
			Namespace:  cfg.Namespace,
			GlobalTags: cfg.Tags,
		})
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		return b, nil
	default:
		log.Warn("unknown metrics backend; metrics disabled", zap.String("backend", cfg.Backend))
		return metrics.Nop{}, nil
	}
}
