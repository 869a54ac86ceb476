package graph

import (
	"errors"
	"slices"
)

// EdgeDepends is the label carried by every edge: From depends on To.
const EdgeDepends = "depends"

// ErrInvalidNodeName is returned when a node would be created with an empty name.
var ErrInvalidNodeName = errors.New("node name must not be empty")

// Node is a package vertex. Nodes are identified by Name; URL and Internal
// are attributes that may be filled in after the node first appears.
type Node struct {
	Name     string
	URL      string
	Internal bool
}

// Edge is a directed "depends" relationship. Req is the version requirement
// declared by From for To, or empty when unknown.
type Edge struct {
	From  string
	To    string
	Label string
	Req   string
}

// Graph is a directed dependency graph keyed by package name.
//
// At most one node exists per name and at most one edge per ordered
// (from, to) pair. Cycles are allowed. Nodes, edges and children are
// reported in insertion order.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	linked   map[[2]string]struct{}
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		linked:   make(map[[2]string]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddPackage inserts a node for n.Name, or returns the existing one.
// For an existing node, a non-empty URL replaces the stored one and Internal
// is sticky once set.
func (g *Graph) AddPackage(n Node) (*Node, error) {
	if n.Name == "" {
		return nil, ErrInvalidNodeName
	}
	if existing, ok := g.nodes[n.Name]; ok {
		if n.URL != "" {
			existing.URL = n.URL
		}
		existing.Internal = existing.Internal || n.Internal
		return existing, nil
	}
	node := n
	g.nodes[n.Name] = &node
	g.order = append(g.order, n.Name)
	return &node, nil
}

// Link adds a "depends" edge from → to, creating either endpoint if it is
// missing. Linking an already linked pair is a no-op and keeps the first
// requirement.
func (g *Graph) Link(from, to, req string) error {
	if from == "" || to == "" {
		return ErrInvalidNodeName
	}
	g.ensure(from)
	g.ensure(to)

	key := [2]string{from, to}
	if _, ok := g.linked[key]; ok {
		return nil
	}
	g.linked[key] = struct{}{}
	g.edges = append(g.edges, Edge{From: from, To: to, Label: EdgeDepends, Req: req})
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

func (g *Graph) ensure(name string) {
	if _, ok := g.nodes[name]; !ok {
		g.nodes[name] = &Node{Name: name}
		g.order = append(g.order, name)
	}
}

// Node returns the node with the given name and true, or nil and false.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, name := range g.order {
		nodes[i] = g.nodes[name]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// HasEdge reports whether from → to is linked.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.linked[[2]string{from, to}]
	return ok
}

// Children returns the names the node depends on, in link order.
// The returned slice should not be modified.
func (g *Graph) Children(name string) []string { return g.outgoing[name] }

// Parents returns the names depending on the node, in link order.
// The returned slice should not be modified.
func (g *Graph) Parents(name string) []string { return g.incoming[name] }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Roots returns nodes nothing depends on, in insertion order. A graph whose
// every node sits on a cycle has no roots.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, name := range g.order {
		if len(g.incoming[name]) == 0 {
			roots = append(roots, g.nodes[name])
		}
	}
	return roots
}

// HasCycle reports whether the graph contains a directed cycle, using
// depth-first search with white/gray/black colouring.
func (g *Graph) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.nodes))

	var visit func(string) bool
	visit = func(name string) bool {
		color[name] = gray
		for _, child := range g.outgoing[name] {
			switch color[child] {
			case gray:
				return true
			case white:
				if visit(child) {
					return true
				}
			}
		}
		color[name] = black
		return false
	}

	for _, name := range g.order {
		if color[name] == white && visit(name) {
			return true
		}
	}
	return false
}
