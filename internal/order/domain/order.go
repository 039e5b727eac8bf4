package domain

import "encoding/json"

const IntentCapture = "CAPTURE"

// Provider order statuses this service reports back; the provider may add others.
const (
	StatusCreated   = "CREATED"
	StatusApproved  = "APPROVED"
	StatusCompleted = "COMPLETED"
)

// OrderRequest is the provider-neutral body of a create-order call.
type OrderRequest struct {
	Intent        string
	PurchaseUnits []PurchaseUnit
}

type PurchaseUnit struct {
	Amount Money
}

// Money carries an uppercased currency code and a fixed two-decimal value.
type Money struct {
	CurrencyCode string
	Value        string
}

func NewCaptureOrderRequest(currency, value string) OrderRequest {
	return OrderRequest{
		Intent: IntentCapture,
		PurchaseUnits: []PurchaseUnit{
			{Amount: Money{CurrencyCode: currency, Value: value}},
		},
	}
}

// Order is a provider-side order. The provider is the source of truth;
// nothing here is stored.
type Order struct {
	ID     string
	Status string
	Raw    json.RawMessage
}

// Capture is the subset of a capture response the checkout flow needs.
// PayerEmail and CaptureID are empty when the provider omits them.
type Capture struct {
	OrderID    string
	Status     string
	PayerEmail string
	CaptureID  string
}
