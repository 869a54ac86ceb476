// Package crates provides an HTTP client for the crates.io API.
//
// # Usage
//
//	client := crates.NewClient(cache.NewNullCache(), 24*time.Hour, time.Second)
//
//	info, err := client.FetchCrate(ctx, "serde", false)
//	if err != nil {
//	    return err
//	}
//	deps, err := client.FetchDependencies(ctx, info.ID, info.MaxVersion, false)
//
// # Endpoints
//
//   - GET /crates/{name}: crate metadata ([CrateInfo])
//   - GET /crates/{id}/{version}/dependencies: declared dependencies ([Dependency])
//
// Dependencies are returned unfiltered; optional, dev and build entries are
// all present and carry their flags. Filtering is the caller's decision.
//
// # User-Agent
//
// crates.io requires a descriptive User-Agent; the client sends
// "depth/<version> (https://github.com/matzehuels/depth)".
package crates
