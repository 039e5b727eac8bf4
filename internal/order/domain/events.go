package domain

import "time"

const (
	EventOrderCreated  = "OrderCreated"
	EventOrderCaptured = "OrderCaptured"
)

type OrderCreated struct {
	OrderID    string    `json:"orderID"`
	Status     string    `json:"status"`
	Currency   string    `json:"currency"`
	Amount     string    `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderCaptured carries no payer details.
type OrderCaptured struct {
	OrderID    string    `json:"orderID"`
	Status     string    `json:"status"`
	CaptureID  string    `json:"captureID,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
