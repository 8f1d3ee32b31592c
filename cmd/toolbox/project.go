package main

import (
	"io"
	"log/slog"

	"github.com/vango-dev/toolbox/internal/catalog"
	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/internal/logging"
	"github.com/vango-dev/toolbox/pkg/router"
)

// project is everything a command needs to resolve routes.
type project struct {
	cfg      *config.Config
	logger   *slog.Logger
	table    *router.Table
	registry *router.Registry
}

// loadProject reads toolbox.json from flags.dir, builds the logger and the
// route table. Logs go to logOut.
func loadProject(flags *globalFlags, logOut io.Writer) (*project, error) {
	cfg, err := config.Load(flags.dir)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level, logOut)

	table, err := catalog.LoadTable(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &project{
		cfg:      cfg,
		logger:   logger,
		table:    table,
		registry: catalog.NewRegistry(table, router.WithRegistryLogger(logger)),
	}, nil
}
