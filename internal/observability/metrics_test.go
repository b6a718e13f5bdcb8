package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-etl/internal/config"
)

func TestNewMetricsForTesting_Usable(t *testing.T) {
	m := NewMetricsForTesting()

	m.MessagesConsumed.Inc()
	m.DecodeErrors.WithLabelValues("invalid_number").Inc()
	m.DecodeCache.WithLabelValues("hit").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesConsumed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("invalid_number")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DecodeCache.WithLabelValues("hit")))
}

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsForTesting()
	for _, c := range m.collectors() {
		require.NoError(t, reg.Register(c))
	}
	m.FlightCategory.WithLabelValues("VFR").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["metar_etl_observations_total"])
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})
	require.NotNil(t, logger)
}
