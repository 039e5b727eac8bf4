package paypal

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// TokenStore keeps a bearer token until its TTL runs out.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// expirySkew is subtracted from the provider's expires_in before caching.
const expirySkew = 60 * time.Second

// CachingTokenSource serves tokens from a TokenStore and refreshes them
// through the wrapped source. Concurrent misses share one refresh.
type CachingTokenSource struct {
	log   *slog.Logger
	src   TokenSource
	store TokenStore
	key   string
	group singleflight.Group
}

func NewCachingTokenSource(log *slog.Logger, src TokenSource, store TokenStore, env Environment) *CachingTokenSource {
	return &CachingTokenSource{
		log:   log,
		src:   src,
		store: store,
		key:   "paypal:token:" + env.Mode + ":" + env.ClientID,
	}
}

func (c *CachingTokenSource) AccessToken(ctx context.Context) (AccessToken, error) {
	value, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.log.Warn("token cache read failed", "err", err)
	} else if ok {
		return AccessToken{Value: value, Type: "Bearer"}, nil
	}

	v, err, _ := c.group.Do(c.key, func() (any, error) {
		tok, err := c.src.AccessToken(ctx)
		if err != nil {
			return AccessToken{}, err
		}
		if ttl := tok.ExpiresIn - expirySkew; ttl > 0 {
			if err := c.store.Set(ctx, c.key, tok.Value, ttl); err != nil {
				c.log.Warn("token cache write failed", "err", err)
			}
		}
		return tok, nil
	})
	if err != nil {
		return AccessToken{}, err
	}
	return v.(AccessToken), nil
}

// Invalidate drops the cached token so the next call re-authenticates.
func (c *CachingTokenSource) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}
