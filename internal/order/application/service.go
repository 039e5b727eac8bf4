package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/order/domain"
	payment "github.com/dmehra2102/paypal-checkout/internal/payment/domain"
)

type Service struct {
	log      *slog.Logger
	provider PaymentProvider
	events   EventPublisher
}

// NewService wires the order service. events may be nil.
func NewService(log *slog.Logger, provider PaymentProvider, events EventPublisher) *Service {
	if events == nil {
		events = nopPublisher{}
	}
	return &Service{log: log, provider: provider, events: events}
}

// CreateOrder validates the request and opens a CAPTURE order with the provider.
// Invalid requests return payment.ValidationErrors and never reach the provider.
func (s *Service) CreateOrder(ctx context.Context, req payment.PaymentRequest) (domain.Order, error) {
	if errs := payment.Validate(req); len(errs) > 0 {
		return domain.Order{}, errs
	}

	value, err := payment.FormatAmount(req.Amount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("formatting amount: %w", err)
	}
	currency := payment.NormalizeCurrency(req.Currency)

	order, err := s.provider.CreateOrder(ctx, domain.NewCaptureOrderRequest(currency, value))
	if err != nil {
		return domain.Order{}, fmt.Errorf("creating order: %w", err)
	}
	s.log.Info("order created", "order_id", order.ID, "status", order.Status, "currency", currency, "amount", value)

	s.publish(ctx, domain.EventOrderCreated, order.ID, domain.OrderCreated{
		OrderID:    order.ID,
		Status:     order.Status,
		Currency:   currency,
		Amount:     value,
		OccurredAt: time.Now().UTC(),
	})
	return order, nil
}

// CaptureOrder collects the funds of a buyer-approved order.
func (s *Service) CaptureOrder(ctx context.Context, orderID string) (domain.Capture, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.Capture{}, payment.ValidationErrors{"Missing orderID parameter"}
	}

	capture, err := s.provider.CaptureOrder(ctx, orderID)
	if err != nil {
		return domain.Capture{}, fmt.Errorf("capturing order %s: %w", orderID, err)
	}
	s.log.Info("order captured", "order_id", capture.OrderID, "status", capture.Status, "capture_id", capture.CaptureID)

	s.publish(ctx, domain.EventOrderCaptured, capture.OrderID, domain.OrderCaptured{
		OrderID:    capture.OrderID,
		Status:     capture.Status,
		CaptureID:  capture.CaptureID,
		OccurredAt: time.Now().UTC(),
	})
	return capture, nil
}

func (s *Service) publish(ctx context.Context, eventType, key string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("event marshal failed", "type", eventType, "err", err)
		return
	}
	if err := s.events.Publish(ctx, eventType, key, payload); err != nil {
		s.log.Warn("event publish failed", "type", eventType, "key", key, "err", err)
	}
}
