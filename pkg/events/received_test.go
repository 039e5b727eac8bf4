package events_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dmehra2102/paypal-checkout/pkg/events"
	"github.com/dmehra2102/paypal-checkout/pkg/tracing"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestDecode_RoundTrip(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tp, err := tracing.Init(context.Background(), "checkout-test", "", log)
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	p := &recordingProducer{}
	d := events.NewDispatcher(log, p, "checkout.events", "checkout-service")
	require.NoError(t, d.Publish(ctx, "OrderCaptured", "ORDER-1", []byte(`{"orderID":"ORDER-1"}`)))

	msg := p.msgs[0]
	msg.Partition, msg.Offset = 2, 41
	_, ev := events.Decode(context.Background(), msg)

	require.Equal(t, header(msg, "event_id"), ev.ID)
	require.Equal(t, "OrderCaptured", ev.Type)
	require.Equal(t, "ORDER-1", ev.Key)
	require.Equal(t, "checkout-service", ev.Source)
	require.Equal(t, span.SpanContext().TraceID().String(), ev.TraceID)
	require.Equal(t, 2, ev.Partition)
	require.Equal(t, int64(41), ev.Offset)
	require.JSONEq(t, `{"orderID":"ORDER-1"}`, string(ev.Payload))
}

func TestDecode_NonJSONPayload(t *testing.T) {
	_, ev := events.Decode(context.Background(), kafka.Message{Key: []byte("k"), Value: []byte("not json")})
	require.Equal(t, `"not json"`, string(ev.Payload))
	require.Empty(t, ev.TraceID)
}
