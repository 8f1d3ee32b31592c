package catalog

import (
	"github.com/vango-dev/toolbox/pkg/router"
	"github.com/vango-dev/toolbox/pkg/view"
)

// NewRegistry binds the catalog's view keys to lazy loaders that render
// against t. Keys that t references but the catalog does not know stay
// unregistered, so they surface through Registry.Missing.
func NewRegistry(t *router.Table, opts ...router.RegistryOption) *router.Registry {
	r := router.NewRegistry(opts...)
	r.RegisterView(ViewHome, func() view.View { return HomeView(t) })
	r.RegisterView(ViewCategory, func() view.View { return CategoryView(t) })
	r.RegisterView(ViewNotFound, NotFoundView)

	for _, def := range Routes() {
		switch key := def.ViewKey(); key {
		case ViewHome, ViewCategory, ViewNotFound:
		default:
			r.RegisterView(key, func() view.View { return FeatureView(t) })
		}
	}
	return r
}
