package setup

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"movieetl/internal/config"
	"movieetl/internal/metrics"
	"movieetl/internal/metrics/datadog"
	"movieetl/internal/metrics/prompush"
)

func TestBackend(t *testing.T) {
	t.Parallel()

	b, err := Backend("movies", config.MetricsConfig{Backend: "none"}, nil)
	require.NoError(t, err)
	require.Equal(t, metrics.Nop{}, b)

	b, err = Backend("movies", config.MetricsConfig{Backend: "pushgateway", PushgatewayURL: "http://127.0.0.1:9091"}, nil)
	require.NoError(t, err)
	require.IsType(t, &prompush.Backend{}, b)

	b, err = Backend("movies", config.MetricsConfig{Backend: "datadog", DatadogAddr: "127.0.0.1:8125"}, nil)
	require.NoError(t, err)
	require.IsType(t, &datadog.Backend{}, b)

	_, err = Backend("movies", config.MetricsConfig{Backend: "pushgateway"}, nil)
	require.Error(t, err)
}

func TestBackendUnknownWarns(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	b, err := Backend("movies", config.MetricsConfig{Backend: "graphite"}, zap.New(core))
	require.NoError(t, err)
	require.Equal(t, metrics.Nop{}, b)
	require.Equal(t, 1, logs.FilterMessage("unknown metrics backend; metrics disabled").Len())
}
