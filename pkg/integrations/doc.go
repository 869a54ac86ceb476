// Package integrations provides HTTP plumbing for package registry APIs.
//
// [Client] is shared by the registry-specific subpackages (currently
// [crates]). It takes care of:
//   - JSON GET requests with default headers (crates.io requires a User-Agent)
//   - a fixed per-request timeout chosen at construction
//   - mapping HTTP status codes onto [ErrNotFound] and [ErrNetwork]
//   - retrying transient failures (transport errors, 429, 5xx)
//   - optional response caching through a [cache.Cache] backend
//   - emitting [observability.HTTPHooks] and [observability.CacheHooks] events
//
// [crates]: github.com/matzehuels/depth/pkg/integrations/crates
// [cache.Cache]: github.com/matzehuels/depth/pkg/cache.Cache
// [observability.HTTPHooks]: github.com/matzehuels/depth/pkg/observability.HTTPHooks
// [observability.CacheHooks]: github.com/matzehuels/depth/pkg/observability.CacheHooks
package integrations
