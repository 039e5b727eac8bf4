package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/app"
	"github.com/dmehra2102/paypal-checkout/internal/config"
	"github.com/dmehra2102/paypal-checkout/pkg/logging"
	"github.com/dmehra2102/paypal-checkout/pkg/shutdown"
	"github.com/dmehra2102/paypal-checkout/pkg/tracing"
)

const serviceName = "checkout-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level)

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	tp, err := tracing.Init(ctx, serviceName, cfg.Trace.Endpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	checkout, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := checkout.Close(); err != nil {
			log.Warn("close failed", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           checkout.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A create may fetch a token, hit a 401 and fetch again.
		WriteTimeout: 2*cfg.PayPal.Timeout + 5*time.Second,
	}

	go func() {
		log.Info("http listening", "addr", srv.Addr, "paypal_mode", checkout.Env.Mode, "paypal_base_url", checkout.Env.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("checkout-service shutdown complete")
}
