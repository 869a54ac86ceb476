package rust

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/depth/pkg/deps"
	"github.com/matzehuels/depth/pkg/graph"
	"github.com/matzehuels/depth/pkg/integrations"
	"github.com/matzehuels/depth/pkg/integrations/crates"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/crates/demo":                      `{"crate":{"id":"demo","name":"demo","max_version":"0.2.0","homepage":"https://demo.rs"}}`,
		"/crates/demo/0.2.0/dependencies":   `{"dependencies":[{"crate_id":"left","req":"^1","optional":false,"kind":"normal"},{"crate_id":"gone","req":"^1","optional":false,"kind":"normal"},{"crate_id":"extra","req":"^1","optional":true,"kind":"normal"}]}`,
		"/crates/left":                      `{"crate":{"id":"left","name":"left","max_version":"1.0.0","homepage":"https://left.rs"}}`,
		"/crates/left/1.0.0/dependencies":   `{"dependencies":[]}`,
		"/crates/broken":                    `{"crate":{"id":"broken","name":"broken","max_version":"1.0.0"}}`,
		"/crates/broken/1.0.0/dependencies": `{"dependencies":`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	client := crates.NewClient(nil, time.Hour, 2*time.Second).WithBaseURL(newServer(t).URL)
	return NewRegistry(client, false)
}

func TestCrateMetadata(t *testing.T) {
	meta, err := newRegistry(t).CrateMetadata(context.Background(), "demo")
	if err != nil {
		t.Fatalf("CrateMetadata: %v", err)
	}
	want := deps.CrateMetadata{Name: "demo", ID: "demo", HomePage: "https://demo.rs", MaxVersion: "0.2.0"}
	if *meta != want {
		t.Errorf("meta = %+v, want %+v", *meta, want)
	}
}

func TestCrateMetadataNotFound(t *testing.T) {
	_, err := newRegistry(t).CrateMetadata(context.Background(), "nothing")
	if !errors.Is(err, deps.ErrNotFound) {
		t.Errorf("err = %v, want deps.ErrNotFound", err)
	}
}

func TestListDependencies(t *testing.T) {
	list, err := newRegistry(t).ListDependencies(context.Background(), "demo", "0.2.0")
	if err != nil {
		t.Fatalf("ListDependencies: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d dependencies, want 3", len(list))
	}
	if list[0] != (deps.Dependency{Name: "left", Req: "^1", Kind: "normal"}) {
		t.Errorf("list[0] = %+v", list[0])
	}
	if !list[2].Optional {
		t.Error("list[2] should be optional")
	}
}

func TestListDependenciesDecodeError(t *testing.T) {
	_, err := newRegistry(t).ListDependencies(context.Background(), "broken", "1.0.0")
	if err == nil || errors.Is(err, deps.ErrNotFound) {
		t.Errorf("err = %v, want a decode failure", err)
	}
}

func TestFetcherOverHTTP(t *testing.T) {
	g := graph.New()
	f := deps.NewFetcher(newRegistry(t), g, deps.Options{})

	pkg, err := f.Fetch(context.Background(), "demo", 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if pkg.URL != "https://demo.rs" {
		t.Errorf("URL = %q", pkg.URL)
	}
	if got := g.Children("demo"); len(got) != 1 || got[0] != "left" {
		t.Errorf("Children(demo) = %v, want [left]", got)
	}
	if f.Stats().Missing != 1 {
		t.Errorf("Missing = %d, want 1 (gone)", f.Stats().Missing)
	}
}

func TestMapError(t *testing.T) {
	if !errors.Is(mapError(integrations.ErrNotFound), deps.ErrNotFound) {
		t.Error("ErrNotFound should map to deps.ErrNotFound")
	}
	if err := mapError(integrations.ErrNetwork); !errors.Is(err, integrations.ErrNetwork) || errors.Is(err, deps.ErrNotFound) {
		t.Errorf("network errors should pass through, got %v", err)
	}
}
