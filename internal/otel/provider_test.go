package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	globalotel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

func TestDisabledProviderIsNoop(t *testing.T) {
	p, err := New(Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Flush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestEnabledRequiresWriter(t *testing.T) {
	_, err := New(Config{Enabled: true, ServiceName: "vitalsim"})
	require.Error(t, err)
}

func TestEnabledProviderExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(Config{
		Enabled:      true,
		ServiceName:  "vitalsim",
		Interval:     time.Hour, // flush manually
		MetricWriter: &buf,
	})
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(context.Background()) }()

	counter, err := globalotel.Meter("test").Int64Counter("test.events")
	require.NoError(t, err)
	counter.Add(context.Background(), 3, metric.WithAttributes())

	require.NoError(t, p.Flush(context.Background()))
	assert.Contains(t, buf.String(), "test.events")
}
