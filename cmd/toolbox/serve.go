package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/internal/devserver"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Start the development server.

The server renders the first view of every page, proxies the configured
API prefixes to their upstreams and keeps navigation live over /_nav.

Examples:
  toolbox serve
  toolbox serve --port=8080
  toolbox serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from toolbox.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from toolbox.json)")

	return cmd
}

func runServe(cmd *cobra.Command, flags *globalFlags, port int, host string) error {
	p, err := loadProject(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if port > 0 {
		p.cfg.Dev.Port = port
	}
	if host != "" {
		p.cfg.Dev.Host = host
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	srv, err := devserver.New(devserver.Options{
		Config:   p.cfg,
		Table:    p.table,
		Registry: p.registry,
		Logger:   p.logger,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printBanner(w)
	success(w, "Serving %d routes at %s", p.table.Len(), p.cfg.DevURL())
	for _, prefix := range p.cfg.ProxyPrefixes() {
		info(w, "proxy %s → %s", prefix, p.cfg.Dev.Proxy[prefix].Target)
	}
	if p.cfg.Metrics.Enabled {
		info(w, "metrics at %s%s", p.cfg.DevURL(), p.cfg.Metrics.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
