// Package app assembles the checkout components from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/config"
	"github.com/dmehra2102/paypal-checkout/internal/order/application"
	orderhttp "github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/http"
	orderkafka "github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/kafka"
	"github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/paypal"
	"github.com/dmehra2102/paypal-checkout/pkg/events"
	"github.com/dmehra2102/paypal-checkout/pkg/logging"
	"github.com/dmehra2102/paypal-checkout/pkg/tokencache"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

const eventSource = "checkout-service"

// App holds the wired checkout components. Build it once at startup and
// Close it on shutdown.
type App struct {
	Env     paypal.Environment
	Tokens  paypal.TokenSource
	Service *application.Service

	cfg     *config.Config
	log     *slog.Logger
	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	env, err := paypal.NewEnvironment(paypal.Credentials{
		ClientID:     cfg.PayPal.ClientID,
		ClientSecret: cfg.PayPal.ClientSecret,
		Mode:         cfg.PayPal.Mode,
		BaseURL:      cfg.PayPal.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	a := &App{Env: env, cfg: cfg, log: log.With("paypal_mode", env.Mode)}

	// Deadlines come from each call's context, see paypal.WithTimeout.
	hc := &http.Client{}

	tokens, err := a.tokenSource(ctx, paypal.NewTokenProvider(env, hc))
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Tokens = tokens

	client := paypal.NewClient(a.log, env, tokens,
		paypal.WithHTTPClient(hc),
		paypal.WithTimeout(cfg.PayPal.Timeout),
	)

	var publisher application.EventPublisher
	if len(cfg.Events.Brokers) > 0 {
		w := orderkafka.NewWriter(cfg.Events.Brokers)
		a.closers = append(a.closers, w.Close)
		publisher = events.NewDispatcher(a.log, w, cfg.Events.Topic, eventSource)
		a.log.Info("event publishing enabled", "brokers", cfg.Events.Brokers, "topic", cfg.Events.Topic)
	}

	a.Service = application.NewService(a.log, client, publisher)
	return a, nil
}

func (a *App) tokenSource(ctx context.Context, provider *paypal.TokenProvider) (paypal.TokenSource, error) {
	switch a.cfg.Cache.Backend {
	case config.TokenCacheMemory:
		a.log.Info("token cache enabled", "backend", "memory")
		return paypal.NewCachingTokenSource(a.log, provider, tokencache.NewMemory(), a.Env), nil
	case config.TokenCacheRedis:
		rdb := redis.NewClient(&redis.Options{Addr: a.cfg.Cache.RedisAddr})
		a.closers = append(a.closers, rdb.Close)

		store := tokencache.NewRedis(rdb, "checkout:")
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("redis token cache at %s: %w", a.cfg.Cache.RedisAddr, err)
		}
		a.log.Info("token cache enabled", "backend", "redis", "addr", a.cfg.Cache.RedisAddr)
		return paypal.NewCachingTokenSource(a.log, provider, store, a.Env), nil
	default:
		return provider, nil
	}
}

// Router is the full HTTP stack: request ids, logging, CORS and the checkout routes.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(a.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{a.cfg.HTTP.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/", orderhttp.NewHandler(a.log, a.Service, a.Env.Mode).Routes())
	return r
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
