package tracing_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/dmehra2102/paypal-checkout/pkg/tracing"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestPropagation(t *testing.T) {
	ctx := context.Background()
	tp, err := tracing.Init(ctx, "checkout-test", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(ctx) }()

	ctx, span := otel.Tracer("test").Start(ctx, "root")
	defer span.End()

	h := http.Header{}
	tracing.InjectHTTPHeaders(ctx, h)
	require.NotEmpty(t, h.Get(tracing.TraceparentHeader))

	headers := tracing.InjectKafkaHeaders(ctx, nil)
	extracted := tracing.ExtractKafkaHeaders(context.Background(), headers)
	require.Equal(t, span.SpanContext().TraceID(), trace.SpanContextFromContext(extracted).TraceID())
}
