package catalog

import (
	"log/slog"

	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/router"
)

// LoadTable builds the route table cfg selects: the manifest named by
// routes.manifest when set, otherwise the built-in catalog.
func LoadTable(cfg *config.Config, logger *slog.Logger) (*router.Table, error) {
	opts := []router.TableOption{
		router.WithDuplicatePolicy(cfg.DuplicatePolicy()),
		router.WithTableLogger(logger),
	}

	path := cfg.ManifestPath()
	if path == "" {
		return router.NewTable(Routes(), opts...)
	}

	defs, err := router.LoadManifest(path)
	if err != nil {
		return nil, errors.New("C003").WithDetail("route manifest %s", path).Wrap(err)
	}
	logger.Debug("catalog: loaded route manifest", "path", path, "routes", len(defs))
	return router.NewTable(defs, opts...)
}
