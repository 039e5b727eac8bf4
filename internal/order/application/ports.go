package application

import (
	"context"

	"github.com/dmehra2102/paypal-checkout/internal/order/domain"
)

// PaymentProvider is the outbound port to the payment provider's order API.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (domain.Capture, error)
}

// EventPublisher announces checkout outcomes. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload []byte) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, []byte) error { return nil }
