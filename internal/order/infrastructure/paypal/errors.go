package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/dmehra2102/paypal-checkout/internal/order/domain"
)

// parseProviderError keeps the provider's own wording. Message falls back
// through message, error_description, error, name, the raw body and finally
// the HTTP status text.
func parseProviderError(op string, status int, body []byte) *domain.ProviderError {
	pe := &domain.ProviderError{Op: op, StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		pe.Name = firstNonEmpty(eb.Name, eb.Error)
		pe.DebugID = eb.DebugID
		pe.Message = firstNonEmpty(eb.Message, eb.ErrorDescription, eb.Error, eb.Name)
		for _, d := range eb.Details {
			pe.Details = append(pe.Details, domain.ProviderIssue{
				Field:       d.Field,
				Issue:       d.Issue,
				Description: d.Description,
			})
		}
	}
	if pe.Message == "" {
		pe.Message = firstNonEmpty(strings.TrimSpace(string(body)), http.StatusText(status))
	}
	return pe
}

// transportError maps a failed round trip. Deadlines become a 504
// ProviderError so callers see a distinct timeout reason.
func transportError(op string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &domain.ProviderError{
			Op:         op,
			StatusCode: http.StatusGatewayTimeout,
			Name:       "TIMEOUT",
			Message:    "payment provider did not respond in time",
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
