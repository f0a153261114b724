package telemetry

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
)

func TestInitOtelWritesSpans(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	shutdown, err := InitOtel(ctx, Options{TraceWriter: &buf, ServiceVersion: "test"})
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry_test").Start(ctx, "bot.CalculateNextMove")
	span.End()

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, buf.String(), "bot.CalculateNextMove")
	assert.Contains(t, buf.String(), serviceName)
}

func TestInitOtelWithCollector(t *testing.T) {
	ctx := context.Background()

	// grpc.NewClient connects lazily, so no collector has to be listening.
	shutdown, err := InitOtel(ctx, Options{Endpoint: "localhost:4317"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	// Flushing to a missing collector may fail; shutdown must still return.
	_ = shutdown(ctx)
}

func TestInitOtelClosesConnectionOnExporterFailure(t *testing.T) {
	prev := newLogExporter
	t.Cleanup(func() { newLogExporter = prev })

	refused := errors.New("log exporter refused")
	var dialed *grpc.ClientConn
	newLogExporter = func(_ context.Context, conn *grpc.ClientConn) (sdklog.Exporter, error) {
		dialed = conn
		return nil, refused
	}

	shutdown, err := InitOtel(context.Background(), Options{Endpoint: "localhost:4317"})
	require.ErrorIs(t, err, refused)
	assert.Nil(t, shutdown)
	require.NotNil(t, dialed)
	assert.Equal(t, connectivity.Shutdown, dialed.GetState())
}
