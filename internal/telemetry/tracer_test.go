package telemetry

import (
	"context"
	"testing"

	"github.com/devfinds/devfinds/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(&config.Config{
		Environment:    "production",
		OTLPEndpoint:   "tempo:4318",
		TracingEnabled: true,
		SamplingRate:   0.5,
	}, "devfinds-api")

	assert.Equal(t, "devfinds-api", cfg.ServiceName)
	assert.Equal(t, "tempo:4318", cfg.OTLPEndpoint)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0.5, cfg.SamplingRate)
}

func TestNewProviderSamplesEverythingAtFullRate(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := NewProvider(recorder, nil, 1.0)
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "op", recorder.Ended()[0].Name())
}
