package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmehra2102/paypal-checkout/pkg/tracing"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Dispatcher struct {
	log           *slog.Logger
	producer      Producer
	topic         string
	aggregateType string
	source        string
}

func NewDispatcher(log *slog.Logger, producer Producer, topic, source string) *Dispatcher {
	return &Dispatcher{log: log, producer: producer, topic: topic, aggregateType: "order", source: source}
}

// Publish wraps a payload in an Event keyed by the aggregate id and sends it.
func (d *Dispatcher) Publish(ctx context.Context, eventType, key string, payload []byte) error {
	return d.Dispatch(ctx, Event{
		ID:            uuid.NewString(),
		AggregateType: d.aggregateType,
		AggregateID:   key,
		Type:          eventType,
		Payload:       payload,
		Headers:       map[string]string{"source": d.source},
		CreatedAt:     time.Now().UTC(),
	})
}

func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	headers := make([]kafka.Header, 0, len(event.Headers)+4)

	for k, v := range event.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	headers = append(headers,
		kafka.Header{Key: "event_id", Value: []byte(event.ID)},
		kafka.Header{Key: "event_type", Value: []byte(event.Type)},
	)
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	msg := kafka.Message{
		Topic:   d.topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
		Time:    event.CreatedAt,
	}
	if err := d.producer.WriteMessages(ctx, msg); err != nil {
		d.log.Error("event dispatch failed", "event_id", event.ID, "type", event.Type, "err", err)
		return err
	}
	d.log.Info("event dispatched", "event_id", event.ID, "type", event.Type, "key", event.AggregateID)
	return nil
}
