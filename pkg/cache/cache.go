// Package cache provides byte-level response caching for registry clients.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (the default, so a run leaves no state behind)
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: a shared Redis instance, for the HTTP server or teams
//
// The package also hosts the retry policy used for registry calls
// ([RetryWithBackoff]), since both concerns sit directly under the HTTP client.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores opaque byte values with a time-to-live.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend  string // one of BackendNone, BackendFile, BackendRedis
	Dir      string // directory for the file backend
	RedisURL string // redis://host:port/db for the redis backend
}

// Open builds the backend named by cfg.Backend. An empty backend is treated
// as [BackendNone].
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: directory not set")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %s, %s or %s)", cfg.Backend, BackendNone, BackendFile, BackendRedis)
	}
}
