package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/order/domain"
)

const tokenPath = "/v1/oauth2/token"

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 1 << 20

type AccessToken struct {
	Value     string
	Type      string
	ExpiresIn time.Duration
}

// TokenSource hands out bearer tokens for provider calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (AccessToken, error)
}

// TokenProvider runs the OAuth2 client-credentials grant. Every call asks
// the provider for a fresh token.
type TokenProvider struct {
	env  Environment
	http *http.Client
}

func NewTokenProvider(env Environment, hc *http.Client) *TokenProvider {
	if hc == nil {
		hc = &http.Client{}
	}
	return &TokenProvider{env: env, http: hc}
}

// AccessToken fails with an error matching domain.ErrAuth. When the provider
// answered, the error also unwraps to *domain.ProviderError.
func (p *TokenProvider) AccessToken(ctx context.Context) (AccessToken, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.env.BaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: build token request: %w", domain.ErrAuth, err)
	}
	req.SetBasicAuth(p.env.ClientID, p.env.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: %w", domain.ErrAuth, transportError("fetch access token", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: read token response: %w", domain.ErrAuth, err)
	}
	if resp.StatusCode/100 != 2 {
		return AccessToken{}, fmt.Errorf("%w: %w", domain.ErrAuth, parseProviderError("fetch access token", resp.StatusCode, body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return AccessToken{}, fmt.Errorf("%w: decode token response: %w", domain.ErrAuth, err)
	}
	if tr.AccessToken == "" {
		return AccessToken{}, fmt.Errorf("%w: token response has no access_token", domain.ErrAuth)
	}

	return AccessToken{
		Value:     tr.AccessToken,
		Type:      firstNonEmpty(tr.TokenType, "Bearer"),
		ExpiresIn: time.Duration(tr.ExpiresIn) * time.Second,
	}, nil
}
