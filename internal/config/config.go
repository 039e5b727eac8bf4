// Package config loads process configuration once at startup.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TokenCacheNone   = "none"
	TokenCacheMemory = "memory"
	TokenCacheRedis  = "redis"
)

type Config struct {
	PayPal PayPal
	HTTP   HTTP
	Log    Log
	Cache  Cache
	Events Events
	Trace  Trace
}

type PayPal struct {
	ClientID     string
	ClientSecret string
	Mode         string
	BaseURL      string
	Timeout      time.Duration
}

type HTTP struct {
	Port        string
	FrontendURL string
}

type Log struct {
	Level string
}

type Cache struct {
	Backend   string
	RedisAddr string
}

type Events struct {
	Brokers []string
	Topic   string
}

type Trace struct {
	Endpoint string
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}

// Load reads a .env file when one exists in the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PAYPAL_CLIENT_ID", "")
	v.SetDefault("PAYPAL_CLIENT_SECRET", "")
	v.SetDefault("PAYPAL_MODE", "sandbox")
	v.SetDefault("PAYPAL_BASE_URL", "")
	v.SetDefault("PROVIDER_TIMEOUT", "30s")
	v.SetDefault("PORT", "3000")
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_CACHE", TokenCacheNone)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_ADDR", "")
	v.SetDefault("EVENTS_TOPIC", "checkout.events")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.AutomaticEnv()
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString("PROVIDER_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
	}

	cache := strings.ToLower(strings.TrimSpace(v.GetString("TOKEN_CACHE")))
	switch cache {
	case "", TokenCacheNone:
		cache = TokenCacheNone
	case TokenCacheMemory, TokenCacheRedis:
	default:
		return nil, fmt.Errorf("TOKEN_CACHE: unsupported backend %q", cache)
	}

	return &Config{
		PayPal: PayPal{
			ClientID:     v.GetString("PAYPAL_CLIENT_ID"),
			ClientSecret: v.GetString("PAYPAL_CLIENT_SECRET"),
			Mode:         strings.ToLower(v.GetString("PAYPAL_MODE")),
			BaseURL:      v.GetString("PAYPAL_BASE_URL"),
			Timeout:      timeout,
		},
		HTTP: HTTP{
			Port:        v.GetString("PORT"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Log:   Log{Level: v.GetString("LOG_LEVEL")},
		Cache: Cache{Backend: cache, RedisAddr: v.GetString("REDIS_ADDR")},
		Events: Events{
			Brokers: splitList(v.GetString("KAFKA_ADDR")),
			Topic:   v.GetString("EVENTS_TOPIC"),
		},
		Trace: Trace{Endpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
