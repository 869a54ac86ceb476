package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/depth/pkg/graph"
)

func sample() *graph.Graph {
	g := graph.New()
	g.AddPackage(graph.Node{Name: "demo", URL: "https://demo.rs"})
	g.AddPackage(graph.Node{Name: "std_detect", Internal: true})
	g.Link("demo", "left", "^1.2")
	g.Link("demo", "std_detect", "")
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"demo" [label="demo", URL="https://demo.rs"];`,
		`"left" [label="left"];`,
		`"demo" -> "left" [label="depends"];`,
		`"demo" -> "std_detect" [label="depends"];`,
		"dashed",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should end with closing brace")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})

	if !strings.Contains(dot, `label="depends ^1.2"`) {
		t.Errorf("detailed DOT should label edges with the requirement:\n%s", dot)
	}
	if !strings.Contains(dot, `label="demo\nhttps://demo.rs"`) {
		t.Errorf("detailed DOT should include the URL in the label:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.New(), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("empty graph should have no edges:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("demo")) {
		t.Error("SVG output missing expected content")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
