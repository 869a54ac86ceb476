package rust

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/depth/pkg/deps"
	"github.com/matzehuels/depth/pkg/integrations"
	"github.com/matzehuels/depth/pkg/integrations/crates"
)

// Registry adapts a crates.io client to [deps.Registry].
type Registry struct {
	client  *crates.Client
	refresh bool
}

// NewRegistry wraps client. If refresh is true, every lookup bypasses the
// response cache (fresh responses are still stored).
func NewRegistry(client *crates.Client, refresh bool) *Registry {
	return &Registry{client: client, refresh: refresh}
}

// CrateMetadata implements [deps.Registry].
func (r *Registry) CrateMetadata(ctx context.Context, name string) (*deps.CrateMetadata, error) {
	info, err := r.client.FetchCrate(ctx, name, r.refresh)
	if err != nil {
		return nil, mapError(err)
	}
	return &deps.CrateMetadata{
		Name:       info.Name,
		ID:         info.ID,
		HomePage:   info.HomePage,
		MaxVersion: info.MaxVersion,
	}, nil
}

// ListDependencies implements [deps.Registry].
func (r *Registry) ListDependencies(ctx context.Context, id, version string) ([]deps.Dependency, error) {
	list, err := r.client.FetchDependencies(ctx, id, version, r.refresh)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]deps.Dependency, len(list))
	for i, d := range list {
		out[i] = deps.Dependency{
			Name:     d.CrateID,
			Req:      d.Req,
			Optional: d.Optional,
			Kind:     d.Kind,
		}
	}
	return out, nil
}

func mapError(err error) error {
	if errors.Is(err, integrations.ErrNotFound) {
		return fmt.Errorf("%w: %v", deps.ErrNotFound, err)
	}
	return err
}

var _ deps.Registry = (*Registry)(nil)
