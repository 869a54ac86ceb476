package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depth/pkg/observability"
)

// logHooks traces registry traffic at debug level. It is installed only
// with --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnFetchStart(_ context.Context, name string, depth int) {
	h.logger.Debug("fetch", "crate", name, "depth", depth)
}

func (h logHooks) OnFetchComplete(_ context.Context, name string, deps int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "crate", name, "err", err)
		return
	}
	h.logger.Debug("fetched", "crate", name, "deps", deps, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, key string) { h.logger.Debug("cache hit", "key", key) }
func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}
func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "path", path, "err", err)
}

// installLogHooks routes all observability events to logger.
func installLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetFetchHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
