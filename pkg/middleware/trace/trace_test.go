package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestInitTraceWithoutExporters(t *testing.T) {
	InitTrace(context.Background(), &InitConfig{ServiceName: "osfarm-api"})
	assert.Nil(t, tracerProvider)
	assert.Nil(t, meterProvider)
	CloseTrace()
}

func TestInitTraceStdout(t *testing.T) {
	InitTrace(context.Background(), &InitConfig{ServiceName: "osfarm-api", Version: "test", Stdout: true})
	t.Cleanup(func() {
		CloseTrace()
		tracerProvider, meterProvider = nil, nil
	})

	assert.NotNil(t, tracerProvider)
	assert.NotNil(t, meterProvider)
	assert.Equal(t, tracerProvider, otel.GetTracerProvider())
}
