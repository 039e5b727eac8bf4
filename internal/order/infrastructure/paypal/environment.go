package paypal

import (
	"errors"
	"strings"
)

const (
	ModeSandbox = "sandbox"
	ModeLive    = "live"

	SandboxBaseURL = "https://api-m.sandbox.paypal.com"
	LiveBaseURL    = "https://api-m.paypal.com"
)

var ErrMissingCredentials = errors.New("paypal credentials not configured: set PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET")

// Credentials is the raw configuration an Environment is resolved from.
// BaseURL, when set, overrides the mode's default API host.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Mode         string
	BaseURL      string
}

// Environment is a resolved provider target: where to call and as whom.
type Environment struct {
	Mode         string
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// NewEnvironment resolves credentials to an API environment. Mode "live"
// selects production; any other value selects the sandbox.
func NewEnvironment(c Credentials) (Environment, error) {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return Environment{}, ErrMissingCredentials
	}

	env := Environment{
		Mode:         ModeSandbox,
		BaseURL:      SandboxBaseURL,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
	if strings.EqualFold(strings.TrimSpace(c.Mode), ModeLive) {
		env.Mode = ModeLive
		env.BaseURL = LiveBaseURL
	}
	if c.BaseURL != "" {
		env.BaseURL = c.BaseURL
	}
	env.BaseURL = strings.TrimRight(env.BaseURL, "/")
	return env, nil
}

func (e Environment) IsLive() bool { return e.Mode == ModeLive }
