// Package cache stores raw API response bodies keyed by request URL.
package cache

import (
	"context"
	"time"

	"github.com/julianstephens/noor/internal/config"
	"github.com/julianstephens/noor/internal/logger"
)

// Cache is a best-effort byte cache. Implementations log and swallow their own failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Close() error
}

// New picks Redis when an address is configured and the in-process cache otherwise.
// A disabled cache never stores anything.
func New(cfg config.CacheConfig) Cache {
	if !cfg.Enabled {
		return Nop{}
	}
	if cfg.RedisAddr != "" {
		logger.Debug("Using redis response cache", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return NewRedis(cfg)
	}
	return NewMemory(cfg.KeyPrefix)
}

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
func (Nop) Close() error                                       { return nil }
