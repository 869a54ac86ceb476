// Package render turns a dependency graph into output formats.
//
//   - [tree]: indented, depth-coloured terminal tree
//   - [nodelink]: Graphviz DOT source and SVG
//
// JSON export lives in [github.com/matzehuels/depth/pkg/io].
//
// [tree]: github.com/matzehuels/depth/pkg/render/tree
// [nodelink]: github.com/matzehuels/depth/pkg/render/nodelink
package render
