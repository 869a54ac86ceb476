// Package graph provides the in-memory dependency graph built during a
// crate traversal.
//
// # Model
//
// A [Graph] holds one [Node] per package name and directed [Edge] values
// labelled [EdgeDepends]. The homepage URL is a node attribute, so a package
// seen with and without a URL is still a single node.
//
//	g := graph.New()
//	g.AddPackage(graph.Node{Name: "serde", URL: "https://serde.rs"})
//	g.Link("serde", "serde_derive", "^1.0") // creates serde_derive
//
// [Graph.Link] is link-or-create: missing endpoints are inserted and an
// already linked pair is left untouched. Crate graphs can contain cycles
// (dev-dependencies in particular); [Graph.HasCycle] reports them.
package graph
