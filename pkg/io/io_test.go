package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	deperrors "github.com/matzehuels/depth/pkg/errors"
	"github.com/matzehuels/depth/pkg/graph"
)

func sample() *graph.Graph {
	g := graph.New()
	g.AddPackage(graph.Node{Name: "demo", URL: "https://demo.rs"})
	g.Link("demo", "left", "^1.0")
	g.Link("demo", "std", "")
	n, _ := g.Node("std")
	n.Internal = true
	return g
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := Meta{RunID: "run-1", Root: "demo", Levels: 2}
	if err := WriteJSON(sample(), meta, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		Meta  Meta             `json:"meta"`
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Meta != meta {
		t.Errorf("meta = %+v, want %+v", doc.Meta, meta)
	}
	if len(doc.Nodes) != 3 || doc.Nodes[0]["id"] != "demo" {
		t.Errorf("nodes = %v", doc.Nodes)
	}
	if doc.Edges[0]["label"] != "depends" || doc.Edges[0]["req"] != "^1.0" {
		t.Errorf("edges[0] = %v", doc.Edges[0])
	}
	if _, ok := doc.Nodes[1]["url"]; ok {
		t.Error("empty url should be omitted")
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(sample(), Meta{Root: "demo"}, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	g, meta, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if meta.Root != "demo" {
		t.Errorf("meta.Root = %q", meta.Root)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("graph = %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if n, _ := g.Node("std"); !n.Internal {
		t.Error("internal flag lost")
	}
	if e := g.Edges()[0]; e.Req != "^1.0" {
		t.Errorf("edge req = %q", e.Req)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"nodes": [`},
		{"empty id", `{"nodes": [{"id": ""}]}`},
		{"empty edge endpoint", `{"edges": [{"from": "a", "to": ""}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadJSON(strings.NewReader(tt.input))
			if !deperrors.Is(err, deperrors.ErrCodeInvalidFormat) {
				t.Errorf("ReadJSON error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestImportJSONMissing(t *testing.T) {
	if _, _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportJSON should fail for a missing file")
	}
}
