// Package rust connects the crates.io client to the dependency fetcher.
//
//	client := crates.NewClient(backend, 24*time.Hour, time.Second)
//	f := deps.NewFetcher(rust.NewRegistry(client, false), graph.New(), deps.Options{})
//	pkg, err := f.Fetch(ctx, "serde", 2)
//
// Registry misses are reported as [deps.ErrNotFound]; every other client
// error passes through unchanged.
package rust
