package deps

import (
	"context"
	"errors"
	"strings"
)

const (
	DefaultMaxDepth = 64 // Hard cap on the expansion budget
)

// ErrNotFound is returned by a Registry when the crate does not exist.
// The Fetcher turns it into an absent result rather than a failure.
var ErrNotFound = errors.New("crate not found")

// Options configures dependency traversal behavior.
type Options struct {
	Optional bool                 // Follow only optional deps (true) or only required deps (false)
	MaxDepth int                  // Maximum expansion budget (default: 64)
	Logger   func(string, ...any) // Progress/warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// CrateMetadata is the crate-level data needed to list dependencies.
type CrateMetadata struct {
	Name       string // Crate name
	ID         string // Registry identifier used in dependency lookups
	HomePage   string // Homepage URL, empty if not declared
	MaxVersion string // Highest published version
}

// Dependency is one declared dependency of a crate version.
type Dependency struct {
	Name     string `json:"name"`
	Req      string `json:"req,omitempty"`      // Semver requirement, e.g. "^1.0"
	Optional bool   `json:"optional,omitempty"` // Feature-gated dependency
	Kind     string `json:"kind,omitempty"`     // "normal", "dev" or "build"
}

// Package is a crate as seen by the traversal: its metadata plus the
// dependencies that passed the optional filter, in registry order.
type Package struct {
	Name         string
	URL          string
	Version      string
	Dependencies []Dependency
	Internal     bool
}

// IsInternal reports whether a crate name belongs to the standard-library
// family ("std", "std_detect", ...).
func IsInternal(name string) bool {
	return strings.HasPrefix(name, "std")
}

// Registry looks up crates in a package registry.
type Registry interface {
	// CrateMetadata returns metadata for name, or an error wrapping
	// [ErrNotFound] if the crate does not exist.
	CrateMetadata(ctx context.Context, name string) (*CrateMetadata, error)
	// ListDependencies returns every declared dependency of id@version,
	// in registry order and unfiltered.
	ListDependencies(ctx context.Context, id, version string) ([]Dependency, error)
}
