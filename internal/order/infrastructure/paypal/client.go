package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/order/domain"
	"github.com/dmehra2102/paypal-checkout/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ordersPath     = "/v2/checkout/orders"
	DefaultTimeout = 30 * time.Second
)

// Client calls the PayPal Orders v2 REST API.
type Client struct {
	log     *slog.Logger
	env     Environment
	tokens  TokenSource
	http    *http.Client
	timeout time.Duration
	tracer  trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each provider operation, token fetch included.
// Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(log *slog.Logger, env Environment, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		log:     log,
		env:     env,
		tokens:  tokens,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		tracer:  otel.Tracer("paypal-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	ctx, span := c.tracer.Start(ctx, "paypal.CreateOrder", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(toWire(req))
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order request: %w", err)
	}

	raw, err := c.post(ctx, "create order", ordersPath, body, http.Header{"Prefer": {"return=representation"}})
	if err != nil {
		recordError(span, err)
		return domain.Order{}, err
	}

	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.Order{}, fmt.Errorf("decode create order response: %w", err)
	}
	span.SetAttributes(attribute.String("paypal.order_id", out.ID))
	return domain.Order{ID: out.ID, Status: out.Status, Raw: raw}, nil
}

func (c *Client) CaptureOrder(ctx context.Context, orderID string) (domain.Capture, error) {
	ctx, span := c.tracer.Start(ctx, "paypal.CaptureOrder",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("paypal.order_id", orderID)))
	defer span.End()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	path := ordersPath + "/" + url.PathEscape(orderID) + "/capture"
	raw, err := c.post(ctx, "capture order", path, []byte(`{}`), nil)
	if err != nil {
		recordError(span, err)
		return domain.Capture{}, err
	}

	var out captureResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.Capture{}, fmt.Errorf("decode capture response: %w", err)
	}
	return domain.Capture{
		OrderID:    firstNonEmpty(out.ID, orderID),
		Status:     out.Status,
		PayerEmail: out.payerEmail(),
		CaptureID:  out.firstCaptureID(),
	}, nil
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// post sends an authenticated JSON POST. When tokens come from a cache and
// the provider answers 401, the cached token is dropped and the call is
// made once more with a fresh one.
func (c *Client) post(ctx context.Context, op, path string, body []byte, header http.Header) ([]byte, error) {
	status, raw, err := c.send(ctx, op, path, body, header)
	if err != nil {
		return nil, err
	}
	if inv, ok := c.tokens.(invalidator); ok && status == http.StatusUnauthorized {
		c.log.Warn("provider rejected cached token, re-authenticating", "op", op)
		if err := inv.Invalidate(ctx); err != nil {
			c.log.Warn("token invalidate failed", "err", err)
		}
		status, raw, err = c.send(ctx, op, path, body, header)
		if err != nil {
			return nil, err
		}
	}
	if status/100 != 2 {
		return nil, parseProviderError(op, status, raw)
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, op, path string, body []byte, header http.Header) (int, []byte, error) {
	tok, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.env.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	tracing.InjectHTTPHeaders(ctx, req.Header)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, transportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, transportError(op, err)
	}
	c.log.Debug("provider call", "op", op, "status", resp.StatusCode, "debug_id", resp.Header.Get("Paypal-Debug-Id"), "took", time.Since(start))
	return resp.StatusCode, raw, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
