package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/router"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	var (
		format   string
		category string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Long: `Print the route table in declaration order.

Diagnostics found while building the table (duplicate names, shadowed
paths, unnamed routes) and view keys with no registered view are listed
after the table. With --strict any of them fails the command.

Examples:
  toolbox routes
  toolbox routes --category=tools
  toolbox routes --format=yaml > routes.yaml
  toolbox routes --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			defs := p.table.AllRoutes()
			if category != "" {
				defs = p.table.InCategory(category)
			}

			w := cmd.OutOrStdout()
			switch format {
			case "table":
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tPATH\tVIEW\tCATEGORY\tTITLE")
				for _, d := range defs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Name, d.Path, d.ViewKey(), dash(d.Category), d.Title)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			case "yaml":
				data, err := router.MarshalManifest(defs)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(router.Manifest{Routes: defs})
			default:
				return errors.New("X002").WithDetail("unknown format %q, want table, yaml or json", format)
			}

			diags := p.table.Diagnostics()
			missing := p.registry.Missing(p.table)
			if _, ok := p.table.Lookup(p.cfg.Navigation.Fallback); !ok {
				missing = append(missing, p.cfg.Navigation.Fallback+" (fallback route)")
			}

			fmt.Fprintln(w)
			for _, d := range diags {
				warn(w, "%s", d.String())
			}
			for _, key := range missing {
				warn(w, "no view registered for %s", key)
			}
			if len(diags) == 0 && len(missing) == 0 {
				success(w, "%d routes, no problems found", p.table.Len())
				return nil
			}

			if strict {
				return errors.New("X001").
					WithDetail("%d diagnostics, %d missing views", len(diags), len(missing)).
					WithSuggestion("Give every route a unique name and path, and register a view for each key")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, yaml or json")
	cmd.Flags().StringVar(&category, "category", "", "Only list routes in this category")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the table has diagnostics or missing views")

	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
