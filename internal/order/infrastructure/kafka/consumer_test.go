package kafka_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	orderkafka "github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/kafka"
	"github.com/dmehra2102/paypal-checkout/pkg/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	msgs      []kafka.Message
	cancel    context.CancelFunc
	fetchErr  error
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		if r.fetchErr != nil {
			return kafka.Message{}, r.fetchErr
		}
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func message(offset int64, eventType string) kafka.Message {
	return kafka.Message{
		Offset: offset,
		Key:    []byte("ORDER-1"),
		Value:  []byte(`{"orderID":"ORDER-1"}`),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "event_id", Value: []byte("evt-" + eventType)},
		},
	}
}

func TestConsumer_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		msgs:   []kafka.Message{message(1, "OrderCreated"), message(2, "OrderCaptured")},
		cancel: cancel,
	}
	c := orderkafka.NewConsumer(slog.New(slog.NewTextHandler(io.Discard, nil)), r)

	var seen []string
	err := c.Run(ctx, func(_ context.Context, ev events.Received) error {
		seen = append(seen, ev.Type)
		if ev.Type == "OrderCaptured" {
			return errors.New("handler failed")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, []string{"OrderCreated", "OrderCaptured"}, seen)
	require.Equal(t, []int64{1, 2}, r.committed)
	require.True(t, r.closed)
}

func TestConsumer_ReaderError(t *testing.T) {
	r := &fakeReader{fetchErr: errors.New("broker gone")}
	c := orderkafka.NewConsumer(slog.New(slog.NewTextHandler(io.Discard, nil)), r)

	err := c.Run(context.Background(), func(context.Context, events.Received) error { return nil })
	require.EqualError(t, err, "broker gone")
	require.True(t, r.closed)
}
