package crates

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/matzehuels/depth/pkg/buildinfo"
	"github.com/matzehuels/depth/pkg/cache"
	"github.com/matzehuels/depth/pkg/integrations"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// CrateInfo holds the crate-level metadata returned by GET /crates/{name}.
//
// HomePage is empty when the crate does not declare one. MaxVersion is the
// highest published version and is the version whose dependencies are listed.
type CrateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxVersion  string `json:"max_version"`
	HomePage    string `json:"homepage,omitempty"`
	Repository  string `json:"repository,omitempty"`
	Description string `json:"description,omitempty"`
	Downloads   int    `json:"downloads,omitempty"`
}

// Dependency is one entry of GET /crates/{id}/{version}/dependencies.
// Req is the semver requirement as written in the dependent's manifest.
// Kind is "normal", "dev" or "build".
type Dependency struct {
	CrateID  string `json:"crate_id"`
	Req      string `json:"req"`
	Optional bool   `json:"optional"`
	Kind     string `json:"kind"`
}

// Client provides access to the crates.io registry API.
//
// crates.io rejects requests without a User-Agent; the client always sends
// one. All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client.
//
// Parameters:
//   - backend: response cache (nil or [cache.NewNullCache] disables caching)
//   - cacheTTL: how long cached responses stay valid
//   - timeout: per-request connect+read budget (0 selects [integrations.DefaultTimeout])
func NewClient(backend cache.Cache, cacheTTL, timeout time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "crates:", cacheTTL, timeout, headers()),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL returns a copy of the client that talks to baseURL instead of
// crates.io, e.g. a mirror or a test server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	return &Client{Client: c.Client, baseURL: baseURL}
}

func headers() map[string]string {
	return map[string]string{
		"User-Agent": fmt.Sprintf("depth/%s (https://github.com/matzehuels/depth)", buildinfo.Version),
		"Accept":     "application/json",
	}
}

// FetchCrate retrieves metadata for a crate.
//
// If refresh is true, cached data is ignored. Returns an error wrapping
// [integrations.ErrNotFound] if the crate doesn't exist and
// [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchCrate(ctx context.Context, name string, refresh bool) (*CrateInfo, error) {
	var info CrateInfo
	err := c.Cached(ctx, "crate:"+name, refresh, &info, func() error {
		var data crateResponse
		if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, url.PathEscape(name)), &data); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: crate %s", err, name)
			}
			return err
		}
		info = data.Crate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchDependencies lists every declared dependency of one crate version,
// in registry order, without filtering.
func (c *Client) FetchDependencies(ctx context.Context, id, version string, refresh bool) ([]Dependency, error) {
	var deps []Dependency
	err := c.Cached(ctx, "deps:"+id+"@"+version, refresh, &deps, func() error {
		var data depsResponse
		u := fmt.Sprintf("%s/crates/%s/%s/dependencies", c.baseURL, url.PathEscape(id), url.PathEscape(version))
		if err := c.Get(ctx, u, &data); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: crate %s@%s", err, id, version)
			}
			return err
		}
		deps = data.Dependencies
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deps, nil
}

type crateResponse struct {
	Crate CrateInfo `json:"crate"`
}

type depsResponse struct {
	Dependencies []Dependency `json:"dependencies"`
}
