// Package paypaltest provides an in-process stand-in for the PayPal REST API.
package paypaltest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/paypal"
	"github.com/go-chi/chi/v5"
)

const (
	ClientID     = "test-client-id"
	ClientSecret = "test-client-secret"
	AccessToken  = "A21AA-test-token"
)

const (
	DefaultOrderBody   = `{"id":"ORDER-1","status":"CREATED","intent":"CAPTURE","links":[]}`
	DefaultCaptureBody = `{"id":"ORDER-1","status":"COMPLETED","payer":{"email_address":"buyer@example.com"},` +
		`"purchase_units":[{"payments":{"captures":[{"id":"CAPTURE-1","status":"COMPLETED"}]}}]}`
)

type response struct {
	status int
	body   string
}

// Server records calls and answers with canned responses.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	token        response
	create       response
	capture      response
	delay        time.Duration
	rejectNext   int
	tokenCalls   int
	createCalls  int
	captureCalls int
	lastCreate   []byte
	lastCaptured string
	lastHeader   http.Header
}

func NewServer() *Server {
	s := &Server{
		token:   response{http.StatusOK, `{"access_token":"` + AccessToken + `","token_type":"Bearer","expires_in":32400}`},
		create:  response{http.StatusCreated, DefaultOrderBody},
		capture: response{http.StatusCreated, DefaultCaptureBody},
	}

	r := chi.NewRouter()
	r.Post("/v1/oauth2/token", s.handleToken)
	r.Post("/v2/checkout/orders", s.handleCreate)
	r.Post("/v2/checkout/orders/{orderID}/capture", s.handleCapture)
	s.Server = httptest.NewServer(r)
	return s
}

// Environment points a paypal.Environment at this server.
func (s *Server) Environment() paypal.Environment {
	env, _ := paypal.NewEnvironment(paypal.Credentials{
		ClientID:     ClientID,
		ClientSecret: ClientSecret,
		BaseURL:      s.URL,
	})
	return env
}

func (s *Server) OnToken(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = response{status, body}
}

func (s *Server) OnCreate(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.create = response{status, body}
}

func (s *Server) OnCapture(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capture = response{status, body}
}

// SetDelay makes order endpoints wait before answering.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// RejectNext answers the next n order calls with 401.
func (s *Server) RejectNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectNext = n
}

func (s *Server) TokenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCalls
}

func (s *Server) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls
}

func (s *Server) CaptureCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captureCalls
}

func (s *Server) LastCreateBody() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCreate
}

func (s *Server) LastCapturedOrder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCaptured
}

func (s *Server) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeader
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tokenCalls++
	resp := s.token
	s.mu.Unlock()

	id, secret, ok := r.BasicAuth()
	if !ok || id != ClientID || secret != ClientSecret || r.FormValue("grant_type") != "client_credentials" {
		write(w, http.StatusUnauthorized, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
		return
	}
	write(w, resp.status, resp.body)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.createCalls++
	s.lastCreate = body
	s.lastHeader = r.Header.Clone()
	resp, reject := s.create, s.takeReject()
	delay := s.delay
	s.mu.Unlock()

	s.answer(w, r, delay, reject, resp)
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.captureCalls++
	s.lastCaptured = chi.URLParam(r, "orderID")
	s.lastHeader = r.Header.Clone()
	resp, reject := s.capture, s.takeReject()
	delay := s.delay
	s.mu.Unlock()

	s.answer(w, r, delay, reject, resp)
}

// takeReject must be called with s.mu held.
func (s *Server) takeReject() bool {
	if s.rejectNext > 0 {
		s.rejectNext--
		return true
	}
	return false
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request, delay time.Duration, reject bool, resp response) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if reject || r.Header.Get("Authorization") != "Bearer "+AccessToken {
		write(w, http.StatusUnauthorized, `{"name":"AUTHENTICATION_FAILURE","message":"Authentication failed due to invalid authentication credentials or a missing Authorization header."}`)
		return
	}
	write(w, resp.status, resp.body)
}

func write(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

