package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depth/pkg/graph"
)

// Meta describes the run that produced a graph.
type Meta struct {
	RunID    string `json:"run_id,omitempty"`
	Root     string `json:"root,omitempty"`
	Levels   int    `json:"levels"`
	Optional bool   `json:"optional"`
}

type document struct {
	Meta  Meta   `json:"meta"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID       string `json:"id"`
	URL      string `json:"url,omitempty"`
	Internal bool   `json:"internal,omitempty"`
}

type edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Req   string `json:"req,omitempty"`
}

// WriteJSON encodes g as indented JSON and writes it to w.
// Nodes and edges keep the graph's insertion order.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, meta Meta, w io.Writer) error {
	out := document{
		Meta:  meta,
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: n.Name, URL: n.URL, Internal: n.Internal})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Label: e.Label, Req: e.Req})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, meta Meta, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, meta, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
