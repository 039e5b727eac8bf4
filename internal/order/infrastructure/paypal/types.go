package paypal

import "github.com/dmehra2102/paypal-checkout/internal/order/domain"

type orderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type purchaseUnit struct {
	Amount amount `json:"amount"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

func toWire(req domain.OrderRequest) orderRequest {
	out := orderRequest{
		Intent:        req.Intent,
		PurchaseUnits: make([]purchaseUnit, 0, len(req.PurchaseUnits)),
	}
	for _, pu := range req.PurchaseUnits {
		out.PurchaseUnits = append(out.PurchaseUnits, purchaseUnit{
			Amount: amount{CurrencyCode: pu.Amount.CurrencyCode, Value: pu.Amount.Value},
		})
	}
	return out
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type captureResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  *struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	PurchaseUnits []struct {
		Payments *struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (r captureResponse) payerEmail() string {
	if r.Payer == nil {
		return ""
	}
	return r.Payer.EmailAddress
}

// firstCaptureID returns the first capture of the first purchase unit, or "".
func (r captureResponse) firstCaptureID() string {
	if len(r.PurchaseUnits) == 0 {
		return ""
	}
	p := r.PurchaseUnits[0].Payments
	if p == nil || len(p.Captures) == 0 {
		return ""
	}
	return p.Captures[0].ID
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// errorBody covers both the REST error shape and the OAuth error shape.
type errorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	DebugID string `json:"debug_id"`
	Details []struct {
		Field       string `json:"field"`
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`

	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
