package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MsgAmountRequired    = "Amount is required"
	MsgAmountNotPositive = "Amount must be a positive number"
	MsgAmountTooLarge    = "Amount exceeds maximum limit"
	MsgCurrencyRequired  = "Currency is required"
)

// SupportedCurrencies is the ordered allow-list of ISO 4217 codes accepted for checkout.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY"}

// MaxAmount is the inclusive upper bound for a single payment.
var MaxAmount = decimal.RequireFromString("999999.99")

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountTooLarge = errors.New("amount too large")
)

// PaymentRequest is the inbound checkout input. Amount keeps the caller's
// decimal text so that no precision is lost before validation.
type PaymentRequest struct {
	Amount   string
	Currency string
}

// ValidationErrors is the ordered set of problems found in a request.
// An empty set means the request is valid.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

func MsgCurrencyUnsupported() string {
	return "Currency must be one of: " + strings.Join(SupportedCurrencies, ", ")
}

// Validate checks every rule and collects all failures.
func Validate(req PaymentRequest) ValidationErrors {
	var errs ValidationErrors

	amount := strings.TrimSpace(req.Amount)
	if amount == "" {
		errs = append(errs, MsgAmountRequired)
	} else if d, err := ParseAmount(amount); errors.Is(err, ErrAmountTooLarge) {
		errs = append(errs, MsgAmountTooLarge)
	} else if err != nil {
		errs = append(errs, MsgAmountNotPositive)
	} else if d.GreaterThan(MaxAmount) {
		errs = append(errs, MsgAmountTooLarge)
	}

	currency := NormalizeCurrency(req.Currency)
	if currency == "" {
		errs = append(errs, MsgCurrencyRequired)
	} else if !IsSupportedCurrency(currency) {
		errs = append(errs, MsgCurrencyUnsupported())
	}

	return errs
}

// Bounds on the amount text checked before any decimal arithmetic. Comparing
// or rounding a decimal costs time proportional to 10^|exponent|.
const (
	maxAmountLen      = 64
	minAmountExponent = -maxAmountLen
	maxAmountExponent = 16
	// Past this a float64 parse overflows to Infinity.
	maxFiniteExponent = 308
)

// ParseAmount parses a finite decimal that is still positive once rounded to
// cents. A positive amount whose exponent already puts it far above
// MaxAmount fails with ErrAmountTooLarge; one beyond float range fails with
// ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxAmountLen {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if exp := d.Exponent(); exp > maxAmountExponent && exp <= maxFiniteExponent && d.Sign() > 0 {
		return decimal.Zero, ErrAmountTooLarge
	} else if exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.Sign() <= 0 || d.Round(2).Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders the amount with exactly two fractional digits,
// rounding half away from zero: "1" -> "1.00", "2.005" -> "2.01".
func FormatAmount(s string) (string, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return "", err
	}
	return d.StringFixed(2), nil
}

func NormalizeCurrency(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

func IsSupportedCurrency(c string) bool {
	c = NormalizeCurrency(c)
	for _, s := range SupportedCurrencies {
		if s == c {
			return true
		}
	}
	return false
}
