package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	toolerrors "github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/view"
)

// Registry binds view keys to lazy loaders.
// Loaders are only invoked by Load, never at registration time.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]view.Loader
	keys    []string
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger duplicate registrations are reported to.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty view registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		loaders: make(map[string]view.Loader),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds key to load. The first registration of a key wins;
// later ones are ignored with a warning.
func (r *Registry) Register(key string, load view.Loader) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[key]; exists {
		r.logger.Warn("view registry: duplicate view key, keeping first", "view", key)
		return r
	}
	r.loaders[key] = load
	r.keys = append(r.keys, key)
	return r
}

// RegisterView binds key to a plain constructor.
func (r *Registry) RegisterView(key string, fn func() view.View) *Registry {
	return r.Register(key, view.Factory(fn))
}

// Resolve returns the loader bound to key.
func (r *Registry) Resolve(key string) (view.Loader, error) {
	r.mu.RLock()
	load, ok := r.loaders[key]
	r.mu.RUnlock()
	if !ok {
		return nil, toolerrors.New("N004").
			WithDetail("no loader registered for view %q", key).
			Wrap(ErrViewNotFound)
	}
	return load, nil
}

// Load resolves key and runs its loader, producing a fresh view instance.
func (r *Registry) Load(ctx context.Context, key string) (view.View, error) {
	load, err := r.Resolve(key)
	if err != nil {
		return nil, err
	}
	v, err := load(ctx)
	if err != nil {
		return nil, toolerrors.New("N003").
			WithDetail("loading view %q", key).
			Wrap(fmt.Errorf("%w: %w", ErrViewLoad, err))
	}
	if v == nil {
		return nil, toolerrors.New("N003").
			WithDetail("loader for view %q returned no view", key).
			Wrap(ErrViewLoad)
	}
	return v, nil
}

// Keys returns registered keys in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Missing returns the view keys referenced by t that have no loader,
// each listed once, in table order.
func (r *Registry) Missing(t *Table) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, def := range t.routes {
		key := def.ViewKey()
		if _, ok := r.loaders[key]; ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
