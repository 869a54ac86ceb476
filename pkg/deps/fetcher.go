package deps

import (
	"context"
	"errors"
	"time"

	deperrors "github.com/matzehuels/depth/pkg/errors"
	"github.com/matzehuels/depth/pkg/graph"
	"github.com/matzehuels/depth/pkg/observability"
)

// Stats counts the work done by a Fetcher.
type Stats struct {
	Requests int // Registry round trips (metadata and dependency lists)
	Packages int // Distinct packages loaded
	Missing  int // Names the registry reported as not found
}

// Fetcher walks a crate's dependencies depth-first and records every
// package it loads in a graph.
//
// A Fetcher is not safe for concurrent use. The visited cache and the graph
// both persist across calls to Fetch, so a manifest with several roots builds
// one graph and loads each shared crate once.
type Fetcher struct {
	registry Registry
	graph    *graph.Graph
	opts     Options

	visited map[string]*visit
	stats   Stats
}

type visit struct {
	pkg      *Package // nil when the registry has no such crate
	expanded int      // largest budget the package was expanded with
}

// NewFetcher creates a Fetcher that loads crates from reg into g.
func NewFetcher(reg Registry, g *graph.Graph, opts Options) *Fetcher {
	return &Fetcher{
		registry: reg,
		graph:    g,
		opts:     opts.WithDefaults(),
		visited:  make(map[string]*visit),
	}
}

// Stats returns counters accumulated over all Fetch calls.
func (f *Fetcher) Stats() Stats { return f.stats }

// Fetch loads name and expands its dependencies while depth > 1, each level
// down with one less budget. A package already expanded with at least the
// current budget is returned from the visited cache without further work,
// including when an earlier call expanded it.
//
// It returns (nil, nil) if the registry has no crate called name. A missing
// dependency is skipped. Any other registry failure aborts the traversal with
// a NETWORK_ERROR.
func (f *Fetcher) Fetch(ctx context.Context, name string, depth int) (*Package, error) {
	if err := deperrors.ValidateCratesPackageName(name); err != nil {
		return nil, err
	}
	if err := deperrors.ValidateLevels(depth); err != nil {
		return nil, err
	}
	if depth > f.opts.MaxDepth {
		f.opts.Logger("depth %d exceeds limit, clamping to %d", depth, f.opts.MaxDepth)
		depth = f.opts.MaxDepth
	}

	return f.fetch(ctx, name, depth)
}

func (f *Fetcher) fetch(ctx context.Context, name string, depth int) (*Package, error) {
	v, seen := f.visited[name]
	if seen && (v.pkg == nil || depth <= v.expanded) {
		return v.pkg, nil
	}

	if !seen {
		pkg, err := f.load(ctx, name, depth)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			f.visited[name] = &visit{}
			f.stats.Missing++
			return nil, nil
		}
		// The registry canonicalises names, so name may be another spelling
		// of a crate that is already loaded.
		if canon, ok := f.visited[pkg.Name]; ok && canon.pkg != nil {
			f.visited[name] = canon
			return f.fetch(ctx, pkg.Name, depth)
		}
		v = &visit{pkg: pkg}
		f.visited[name] = v
		f.visited[pkg.Name] = v
		f.stats.Packages++
		if _, err := f.graph.AddPackage(graph.Node{Name: pkg.Name, URL: pkg.URL, Internal: pkg.Internal}); err != nil {
			return nil, deperrors.Wrap(deperrors.ErrCodeInternal, err, "add %s", name)
		}
	}

	if depth <= 1 {
		return v.pkg, nil
	}
	v.expanded = depth

	for _, dep := range v.pkg.Dependencies {
		child, err := f.fetch(ctx, dep.Name, depth-1)
		if err != nil {
			return nil, err
		}
		if child == nil {
			f.opts.Logger("skipping %s: dependency %s not found", name, dep.Name)
			continue
		}
		if err := f.graph.Link(v.pkg.Name, child.Name, dep.Req); err != nil {
			return nil, deperrors.Wrap(deperrors.ErrCodeInternal, err, "link %s -> %s", name, child.Name)
		}
	}
	return v.pkg, nil
}

// load performs the two registry calls for one crate and applies the
// optional filter.
func (f *Fetcher) load(ctx context.Context, name string, depth int) (pkg *Package, err error) {
	hooks := observability.Fetch()
	hooks.OnFetchStart(ctx, name, depth)
	start := time.Now()
	defer func() {
		n := 0
		if pkg != nil {
			n = len(pkg.Dependencies)
		}
		hooks.OnFetchComplete(ctx, name, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.stats.Requests++
	meta, err := f.registry.CrateMetadata(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, registryError(ctx, err, "fetch metadata for %s", name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.stats.Requests++
	declared, err := f.registry.ListDependencies(ctx, meta.ID, meta.MaxVersion)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, registryError(ctx, err, "list dependencies of %s@%s", meta.ID, meta.MaxVersion)
	}

	pkgName := meta.Name
	if pkgName == "" {
		pkgName = name
	}
	pkg = &Package{
		Name:     pkgName,
		URL:      meta.HomePage,
		Version:  meta.MaxVersion,
		Internal: IsInternal(pkgName),
	}
	for _, d := range declared {
		if d.Optional == f.opts.Optional {
			pkg.Dependencies = append(pkg.Dependencies, d)
		}
	}
	return pkg, nil
}

func registryError(ctx context.Context, err error, format string, args ...any) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return deperrors.Wrap(deperrors.ErrCodeNetwork, err, format, args...)
}
