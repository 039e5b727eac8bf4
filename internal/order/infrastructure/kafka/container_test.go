package kafka_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	orderkafka "github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/kafka"
	"github.com/dmehra2102/paypal-checkout/pkg/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

// Publishes through the Dispatcher and reads the event back with the
// Consumer against a throwaway broker. Needs Docker and DOCKER_TESTS=1.
func TestKafka_PublishAndConsume(t *testing.T) {
	if testing.Short() || os.Getenv("DOCKER_TESTS") == "" {
		t.Skip("DOCKER_TESTS not set; skipping kafka container test")
	}
	const topic = "checkout.events"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("checkout-test"))
	require.NoError(t, err)
	defer func() { _ = testcontainers.TerminateContainer(container) }()

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	require.NoError(t, err)
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}))
	_ = conn.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := orderkafka.NewWriter(brokers)
	defer w.Close()

	d := events.NewDispatcher(log, w, topic, "checkout-service")
	require.NoError(t, d.Publish(ctx, "OrderCreated", "ORDER-1", []byte(`{"orderID":"ORDER-1"}`)))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	got := make(chan events.Received, 1)
	done := make(chan error, 1)
	consumer := orderkafka.NewConsumer(log, orderkafka.NewReader(brokers, topic, "checkout-test", true))
	go func() {
		done <- consumer.Run(runCtx, func(_ context.Context, ev events.Received) error {
			got <- ev
			return nil
		})
	}()

	select {
	case ev := <-got:
		require.Equal(t, "OrderCreated", ev.Type)
		require.Equal(t, "ORDER-1", ev.Key)
		require.Equal(t, "checkout-service", ev.Source)
		require.JSONEq(t, `{"orderID":"ORDER-1"}`, string(ev.Payload))
	case <-ctx.Done():
		t.Fatal("event was not consumed")
	}

	stop()
	require.NoError(t, <-done)
}
