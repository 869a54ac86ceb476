package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/depth/pkg/graph"
)

const (
	indentWidth = 2
	branch      = " ├── "
)

var (
	colorEven = lipgloss.Color("36")  // Teal
	colorOdd  = lipgloss.Color("75")  // Light blue
	colorDim  = lipgloss.Color("240") // Dim gray
)

// Options configures tree output.
type Options struct {
	// NoColor disables ANSI styling even when the writer is a terminal.
	NoColor bool

	// Renderer overrides colour detection. Use it when the output is
	// buffered for a terminal, so the profile comes from the terminal
	// rather than the buffer.
	Renderer *lipgloss.Renderer
}

// Printer writes a dependency graph as an indented tree.
//
// Colour support is detected from the writer: terminals get ANSI colours,
// pipes and files get plain text, and NO_COLOR is honoured.
type Printer struct {
	w       io.Writer
	even    lipgloss.Style
	odd     lipgloss.Style
	dim     lipgloss.Style
	visited map[string]bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.NewRenderer(w)
	}
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:    w,
		even: r.NewStyle().Foreground(colorEven),
		odd:  r.NewStyle().Foreground(colorOdd),
		dim:  r.NewStyle().Foreground(colorDim).Faint(true),
	}
}

// Print writes root and its descendants, starting at indentation level
// depth and stopping before maxDepth. Nothing is written when
// depth >= maxDepth or root is not in g.
//
// Each package is printed at most once per call. Before descending, a node
// claims all of its not yet printed children, so a package shared by
// siblings appears under the first of them to list it at the shallowest
// level.
func (p *Printer) Print(g *graph.Graph, root string, depth, maxDepth int) error {
	p.visited = make(map[string]bool)
	if depth >= maxDepth {
		return nil
	}
	n, ok := g.Node(root)
	if !ok {
		return nil
	}
	p.visited[root] = true
	return p.print(g, n, depth, maxDepth)
}

func (p *Printer) print(g *graph.Graph, n *graph.Node, depth, maxDepth int) error {
	if err := p.line(n, depth); err != nil {
		return err
	}
	if depth+1 >= maxDepth {
		return nil
	}

	var claimed []*graph.Node
	for _, name := range g.Children(n.Name) {
		if p.visited[name] {
			continue
		}
		child, ok := g.Node(name)
		if !ok {
			continue
		}
		p.visited[name] = true
		claimed = append(claimed, child)
	}

	for _, child := range claimed {
		if err := p.print(g, child, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) line(n *graph.Node, depth int) error {
	style := p.even
	if depth%2 == 1 {
		style = p.odd
	}
	if n.Internal {
		style = p.dim
	}
	text := branch + n.Name + " - (" + n.URL + ")"
	_, err := fmt.Fprintln(p.w, strings.Repeat(" ", depth*indentWidth)+style.Render(text))
	return err
}
