// Package pkg holds the libraries behind the depth command.
//
// # Overview
//
// depth walks a crate's dependencies on crates.io down to a bounded depth and
// prints them as an indented tree. The libraries are split by concern:
//
//   - [deps]: recursive, depth-bounded fetching into a graph
//   - [graph]: packages and their "depends" edges
//   - [integrations]: the crates.io HTTP client with caching and retry
//   - [cache]: response cache backends (none, file, redis)
//   - [render]: tree, DOT and SVG output
//   - [io]: JSON import and export of fetched graphs
//
// # Data Flow
//
//	crates.io API
//	     ↓
//	integrations/crates (HTTP + cache)
//	     ↓
//	deps.Fetcher (visited cache, depth budget)
//	     ↓
//	graph.Graph
//	     ↓
//	render/tree | render/nodelink | io
package pkg
