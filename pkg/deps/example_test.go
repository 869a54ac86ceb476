package deps_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/depth/pkg/deps"
	"github.com/matzehuels/depth/pkg/graph"
)

// staticRegistry serves a fixed set of crates, each at version 1.0.0.
type staticRegistry map[string][]string

func (r staticRegistry) CrateMetadata(_ context.Context, name string) (*deps.CrateMetadata, error) {
	if _, ok := r[name]; !ok {
		return nil, deps.ErrNotFound
	}
	return &deps.CrateMetadata{Name: name, ID: name, HomePage: "https://" + name + ".rs", MaxVersion: "1.0.0"}, nil
}

func (r staticRegistry) ListDependencies(_ context.Context, id, _ string) ([]deps.Dependency, error) {
	var out []deps.Dependency
	for _, name := range r[id] {
		out = append(out, deps.Dependency{Name: name, Req: "^1", Kind: "normal"})
	}
	return out, nil
}

func ExampleFetcher_Fetch() {
	reg := staticRegistry{
		"demo":  {"left", "right"},
		"left":  {"right"},
		"right": nil,
	}
	g := graph.New()
	f := deps.NewFetcher(reg, g, deps.Options{})

	// A depth of 3 shows the crate plus two levels of dependencies.
	pkg, err := f.Fetch(context.Background(), "demo", 3)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(pkg.Name, pkg.URL)
	for _, e := range g.Edges() {
		fmt.Println(e.From, "->", e.To)
	}
	fmt.Println("packages:", f.Stats().Packages)
	// Output:
	// demo https://demo.rs
	// left -> right
	// demo -> left
	// demo -> right
	// packages: 3
}

func ExampleOptions_WithDefaults() {
	opts := deps.Options{Optional: true}.WithDefaults()

	fmt.Println("MaxDepth:", opts.MaxDepth)
	fmt.Println("Optional:", opts.Optional)
	// Output:
	// MaxDepth: 64
	// Optional: true
}
