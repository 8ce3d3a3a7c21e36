package telemetry_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/battle-bot-discord/internal/config"
	"github.com/KirkDiggler/battle-bot-discord/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{name: "no endpoint", cfg: config.TelemetryConfig{Enabled: true}},
		{name: "disabled", cfg: config.TelemetryConfig{Enabled: false, Endpoint: "http://192.0.2.1:4318"}},
		// non-routable address so nothing is exported
		{name: "endpoint url", cfg: config.TelemetryConfig{Enabled: true, Endpoint: "http://192.0.2.1:4318", ServiceName: "test"}},
		{name: "host and port", cfg: config.TelemetryConfig{Enabled: true, Endpoint: "192.0.2.1:4318", ServiceName: "test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := telemetry.Setup(context.Background(), tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, shutdown)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestTracer(t *testing.T) {
	_, span := telemetry.Tracer().Start(context.Background(), "test")
	defer span.End()

	assert.NotNil(t, span)
}
