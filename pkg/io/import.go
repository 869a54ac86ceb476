package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	deperrors "github.com/matzehuels/depth/pkg/errors"
	"github.com/matzehuels/depth/pkg/graph"
)

// ReadJSON decodes a graph written by [WriteJSON].
//
// Nodes must have a non-empty "id". Edges may reference ids not listed under
// "nodes"; such endpoints are created, as with [graph.Graph.Link].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, Meta, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, Meta{}, deperrors.Wrap(deperrors.ErrCodeInvalidFormat, err, "decode graph")
	}

	g := graph.New()
	for _, n := range data.Nodes {
		if _, err := g.AddPackage(graph.Node{Name: n.ID, URL: n.URL, Internal: n.Internal}); err != nil {
			return nil, Meta{}, deperrors.Wrap(deperrors.ErrCodeInvalidFormat, err, "node %q", n.ID)
		}
	}
	for _, e := range data.Edges {
		if err := g.Link(e.From, e.To, e.Req); err != nil {
			return nil, Meta{}, deperrors.Wrap(deperrors.ErrCodeInvalidFormat, err, "edge %s -> %s", e.From, e.To)
		}
	}
	return g, data.Meta, nil
}

// ImportJSON reads a graph from the JSON file at path.
func ImportJSON(path string) (*graph.Graph, Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
