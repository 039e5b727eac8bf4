package events

import (
	"context"
	"encoding/json"

	"github.com/dmehra2102/paypal-checkout/pkg/tracing"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/trace"
)

// Received is an event read back from the topic.
type Received struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	Source    string          `json:"source,omitempty"`
	TraceID   string          `json:"traceID,omitempty"`
	Partition int             `json:"partition"`
	Offset    int64           `json:"offset"`
	Payload   json.RawMessage `json:"payload"`
}

// Decode reverses Dispatch. The returned context carries the producer's
// trace context when the message has one.
func Decode(ctx context.Context, msg kafka.Message) (context.Context, Received) {
	ctx = tracing.ExtractKafkaHeaders(ctx, msg.Headers)

	ev := Received{
		ID:        header(msg.Headers, "event_id"),
		Type:      header(msg.Headers, "event_type"),
		Key:       string(msg.Key),
		Source:    header(msg.Headers, "source"),
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Payload:   msg.Value,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		ev.TraceID = sc.TraceID().String()
	}
	if !json.Valid(msg.Value) {
		ev.Payload, _ = json.Marshal(string(msg.Value))
	}
	return ctx, ev
}

func header(h []kafka.Header, key string) string {
	for _, hh := range h {
		if hh.Key == key {
			return string(hh.Value)
		}
	}
	return ""
}
