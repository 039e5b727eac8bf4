package kafka

import (
	"context"
	"log/slog"

	"github.com/dmehra2102/paypal-checkout/pkg/events"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Reader is the subset of *kafka.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// HandlerFunc receives each decoded event. Returned errors are logged and the
// message is still committed.
type HandlerFunc func(ctx context.Context, ev events.Received) error

type Consumer struct {
	log    *slog.Logger
	reader Reader
	tracer trace.Tracer
}

// NewReader joins group on topic. fromStart only applies when the group has
// no committed offset yet.
func NewReader(brokers []string, topic, group string, fromStart bool) *kafka.Reader {
	start := kafka.LastOffset
	if fromStart {
		start = kafka.FirstOffset
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: start,
	})
}

func NewConsumer(log *slog.Logger, reader Reader) *Consumer {
	return &Consumer{
		log:    log,
		reader: reader,
		tracer: otel.Tracer("checkout-consumer"),
	}
}

// Run blocks until ctx is cancelled (returning nil) or the reader fails.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		msgCtx, ev := events.Decode(ctx, msg)
		msgCtx, span := c.tracer.Start(msgCtx, "Consume"+ev.Type, trace.WithSpanKind(trace.SpanKindConsumer))
		if err := handle(msgCtx, ev); err != nil {
			c.log.Error("event handling failed", "event_id", ev.ID, "type", ev.Type, "err", err)
		}
		span.End()

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.log.Warn("commit failed", "partition", msg.Partition, "offset", msg.Offset, "err", err)
		}
	}
}
