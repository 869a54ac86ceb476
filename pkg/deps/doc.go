// Package deps walks crate dependencies and records them in a graph.
//
// # Overview
//
// A [Fetcher] starts at one crate and follows its declared dependencies
// depth-first through a [Registry]. Every crate it loads becomes a node in a
// [graph.Graph]; every followed dependency becomes a "depends" edge.
//
//	g := graph.New()
//	f := deps.NewFetcher(registry, g, deps.Options{Optional: false})
//	root, err := f.Fetch(ctx, "serde", levels+1)
//
// # Depth Budget
//
// The depth argument is the remaining expansion budget. A crate reached with
// budget 1 is loaded but not expanded, so levels=0 (budget 1) yields only the
// root. Budgets above [Options.MaxDepth] are clamped.
//
// A crate is loaded from the registry at most once per Fetch. When it is
// reached again with a larger budget than before, it is expanded again from
// the cached data so the deeper subtree is not lost.
//
// # Optional Filter
//
// [Options.Optional] selects one side of the optional flag: true follows
// only optional dependencies, false only required ones. Dependency kind
// (normal, dev, build) is not filtered.
//
// # Errors
//
// A crate the registry does not know yields (nil, nil) at the root and is
// skipped, with a log line, below it. Any other registry error aborts the
// walk with a NETWORK_ERROR from [github.com/matzehuels/depth/pkg/errors].
//
// # Manifests
//
// [ParseCargoManifest] reads the [dependencies] table of a Cargo.toml so each
// entry can be fetched as a root of its own.
package deps
