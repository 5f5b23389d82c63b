package providers

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"orcad/pkg/types"
)

// Registry holds providers by id in registration order.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Provider
	order []string
}

// NewRegistry registers ps in order.
func NewRegistry(ps ...Provider) *Registry {
	r := &Registry{byID: make(map[string]Provider)}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// Register adds p. A provider with the same id is replaced in place.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID()]; !ok {
		r.order = append(r.order, p.ID())
	}
	r.byID[p.ID()] = p
}

// Get returns the provider with id or a not-found error.
func (r *Registry) Get(id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound(id)
	}
	return p, nil
}

func (r *Registry) all() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// List describes every registered provider.
func (r *Registry) List() []types.ProviderInfo {
	ps := r.all()
	out := make([]types.ProviderInfo, 0, len(ps))
	for _, p := range ps {
		out = append(out, Info(p))
	}
	return out
}

// ByCapability returns providers declaring capability c.
func (r *Registry) ByCapability(c string) []Provider {
	var out []Provider
	for _, p := range r.all() {
		if HasCapability(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// Health probes a single provider.
func (r *Registry) Health(ctx context.Context, id string) (types.ProviderHealth, error) {
	p, err := r.Get(id)
	if err != nil {
		return types.ProviderHealth{}, err
	}
	h := p.Health(ctx)
	h.ID = id
	observeHealth(h)
	return h, nil
}

// Models lists the models of a single provider.
func (r *Registry) Models(ctx context.Context, id string) ([]string, error) {
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return p.ListModels(ctx)
}

// HealthAll probes every provider concurrently. Results keep registration order.
func (r *Registry) HealthAll(ctx context.Context) []types.ProviderHealth {
	ps := r.all()
	out := make([]types.ProviderHealth, len(ps))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range ps {
		g.Go(func() error {
			h := p.Health(gctx)
			h.ID = p.ID()
			out[i] = h
			observeHealth(h)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
