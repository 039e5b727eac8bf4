package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuth           = errors.New("provider authentication failed")
	ErrMissingOrderID = errors.New("missing orderID")
)

// ProviderIssue is one entry of a provider error's details list.
type ProviderIssue struct {
	Field       string
	Issue       string
	Description string
}

// ProviderError is a non-success answer from the payment provider. Message
// and Name are the provider's own text.
type ProviderError struct {
	Op         string
	StatusCode int
	Name       string
	Message    string
	DebugID    string
	Details    []ProviderIssue
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider status=%d: %s", e.Op, e.StatusCode, e.Message)
}

// HTTPStatus is the status to surface to our caller.
func (e *ProviderError) HTTPStatus() int {
	if e.StatusCode < 400 || e.StatusCode > 599 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}
