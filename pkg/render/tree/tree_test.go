package tree

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/depth/pkg/graph"
)

func build(nodes map[string]string, edges ...[2]string) *graph.Graph {
	g := graph.New()
	for _, e := range edges {
		g.AddPackage(graph.Node{Name: e[0], URL: nodes[e[0]]})
		g.Link(e[0], e[1], "")
	}
	for name, url := range nodes {
		g.AddPackage(graph.Node{Name: name, URL: url})
	}
	return g
}

func render(t *testing.T, g *graph.Graph, root string, depth, maxDepth int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewPrinter(&buf, Options{NoColor: true}).Print(g, root, depth, maxDepth); err != nil {
		t.Fatalf("Print: %v", err)
	}
	return buf.String()
}

func TestPrintGolden(t *testing.T) {
	urls := map[string]string{
		"demo":  "https://demo.rs",
		"left":  "https://left.rs",
		"right": "https://right.rs",
	}
	// Link order matches a depth-first fetch: left's subtree is linked first.
	g := build(urls, [2]string{"left", "right"}, [2]string{"demo", "left"}, [2]string{"demo", "right"})

	want := " ├── demo - (https://demo.rs)\n" +
		"   ├── left - (https://left.rs)\n" +
		"   ├── right - (https://right.rs)\n"
	if got := render(t, g, "demo", 0, 3); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintSingleNode(t *testing.T) {
	g := build(map[string]string{"solo": "https://solo.rs"})
	if got, want := render(t, g, "solo", 0, 2), " ├── solo - (https://solo.rs)\n"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintDepthLimits(t *testing.T) {
	g := build(map[string]string{"a": "", "b": "", "c": ""}, [2]string{"a", "b"}, [2]string{"b", "c"})

	tests := []struct {
		name            string
		depth, maxDepth int
		wantLines       int
	}{
		{"at limit", 3, 3, 0},
		{"root only", 0, 1, 1},
		{"two levels", 0, 2, 2},
		{"whole chain", 0, 10, 3},
		{"offset start", 1, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, g, "a", tt.depth, tt.maxDepth)
			if got := strings.Count(out, "\n"); got != tt.wantLines {
				t.Errorf("lines = %d, want %d:\n%s", got, tt.wantLines, out)
			}
		})
	}
}

func TestPrintIndentation(t *testing.T) {
	g := build(map[string]string{"a": "u", "b": "u", "c": "u"}, [2]string{"a", "b"}, [2]string{"b", "c"})
	want := " ├── a - (u)\n   ├── b - (u)\n     ├── c - (u)\n"
	if got := render(t, g, "a", 0, 5); got != want {
		t.Errorf("Print() =\n%q\nwant\n%q", got, want)
	}
}

func TestPrintCycleOnce(t *testing.T) {
	g := build(map[string]string{"a": "", "b": ""}, [2]string{"a", "b"}, [2]string{"b", "a"})
	out := render(t, g, "a", 0, 10)
	if strings.Count(out, "├── a ") != 1 || strings.Count(out, "├── b ") != 1 {
		t.Errorf("each package should print once:\n%s", out)
	}
}

func TestPrintMissingRoot(t *testing.T) {
	if got := render(t, graph.New(), "nope", 0, 3); got != "" {
		t.Errorf("Print() = %q, want empty", got)
	}
}

func TestPrintResetsVisited(t *testing.T) {
	g := build(map[string]string{"a": ""})
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{NoColor: true})
	p.Print(g, "a", 0, 2)
	p.Print(g, "a", 0, 2)
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("second Print should start fresh:\n%s", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrintWriteError(t *testing.T) {
	g := build(map[string]string{"a": ""})
	if err := NewPrinter(failWriter{}, Options{}).Print(g, "a", 0, 2); err == nil {
		t.Error("Print should report write errors")
	}
}

func TestPrintRendererOverride(t *testing.T) {
	g := build(map[string]string{"a": "https://a.rs", "b": "https://b.rs"}, [2]string{"a", "b"})

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	var buf bytes.Buffer
	if err := NewPrinter(&buf, Options{Renderer: r}).Print(g, "a", 0, 2); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("buffered output should keep the renderer's colours: %q", buf.String())
	}

	buf.Reset()
	if err := NewPrinter(&buf, Options{Renderer: r, NoColor: true}).Print(g, "a", 0, 2); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("NoColor should win over the renderer: %q", buf.String())
	}
}
