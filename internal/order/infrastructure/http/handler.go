package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmehra2102/paypal-checkout/internal/order/application"
	"github.com/dmehra2102/paypal-checkout/internal/order/domain"
	payment "github.com/dmehra2102/paypal-checkout/internal/payment/domain"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
	mode    string
}

// NewHandler builds the checkout HTTP API. mode is reported by the health check.
func NewHandler(log *slog.Logger, service *application.Service, mode string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("checkout-http"),
		mode:    mode,
	}
}

type createOrderReq struct {
	Amount   json.RawMessage `json:"amount"`
	Currency json.RawMessage `json:"currency"`
}

type healthResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Mode    string `json:"mode,omitempty"`
}

type orderResp struct {
	OrderID string `json:"orderID"`
	Status  string `json:"status"`
}

type captureResp struct {
	OrderID    string `json:"orderID"`
	Status     string `json:"status"`
	PayerEmail string `json:"payerEmail,omitempty"`
	CaptureID  string `json:"captureID,omitempty"`
}

type errorResp struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Name    string `json:"name,omitempty"`
	DebugID string `json:"debugID,omitempty"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(Recoverer(h.log))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResp{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "Method not allowed"})
	})

	r.Get("/health", h.health)
	r.Get("/api/health", h.health)
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Post("/create", h.createOrder)
		r.Post("/{orderID}/capture", h.captureOrder)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResp{
		Status:  "ok",
		Message: "PayPal payment server is running",
		Mode:    h.mode,
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "Invalid request body", Details: err.Error()})
		return
	}

	// Provider calls outlive a disconnecting client; the provider client's timeout bounds them.
	order, err := h.service.CreateOrder(context.WithoutCancel(ctx), payment.PaymentRequest{
		Amount:   rawText(req.Amount),
		Currency: rawText(req.Currency),
	})
	if err != nil {
		h.fail(w, span, "Failed to create PayPal order", err)
		return
	}

	span.SetAttributes(attribute.String("order.id", order.ID))
	writeJSON(w, http.StatusOK, orderResp{OrderID: order.ID, Status: order.Status})
}

func (h *Handler) captureOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	ctx, span := h.tracer.Start(r.Context(), "CaptureOrder", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	capture, err := h.service.CaptureOrder(context.WithoutCancel(ctx), orderID)
	if err != nil {
		h.fail(w, span, "Failed to capture PayPal order", err)
		return
	}

	writeJSON(w, http.StatusOK, captureResp{
		OrderID:    capture.OrderID,
		Status:     capture.Status,
		PayerEmail: capture.PayerEmail,
		CaptureID:  capture.CaptureID,
	})
}

// fail maps service errors: validation -> 400, provider -> provider status,
// anything else -> 500 with the error text.
func (h *Handler) fail(w http.ResponseWriter, span trace.Span, msg string, err error) {
	var verrs payment.ValidationErrors
	var perr *domain.ProviderError

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "Validation failed", Details: []string(verrs)})
	case errors.As(err, &perr):
		span.RecordError(err)
		span.SetStatus(codes.Error, perr.Message)
		h.log.Warn(msg, "provider_status", perr.StatusCode, "provider_error", perr.Name, "debug_id", perr.DebugID, "err", err)
		writeJSON(w, perr.HTTPStatus(), errorResp{
			Error:   msg,
			Details: perr.Message,
			Name:    perr.Name,
			DebugID: perr.DebugID,
		})
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.log.Error(msg, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: msg, Details: err.Error()})
	}
}

// rawText returns a JSON string's value, or the literal text of any other
// JSON value so validation can reject it with a field message.
func rawText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return ""
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return text
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
