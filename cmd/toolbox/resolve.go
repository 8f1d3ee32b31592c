package main

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/pkg/router"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Show which route each path resolves to",
		Long: `Resolve paths against the route table without mounting views.

Paths that match nothing are reported against the fallback route.

Examples:
  toolbox resolve /tools /oil-price/
  toolbox resolve "/novel-reader?book=3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			m := router.NewMatcher(p.table)
			w := cmd.OutOrStdout()

			for _, raw := range args {
				match, err := m.Match(raw)
				switch {
				case err == nil:
					fmt.Fprintf(w, "%s → %s (%s)%s\n", raw, match.Route.Name, match.Path, describeMatch(match))
				case stderrors.Is(err, router.ErrRouteNotFound):
					warn(w, "%s → %s (no route matches)", raw, p.cfg.Navigation.Fallback)
				default:
					warn(w, "%s → %s (%v)", raw, p.cfg.Navigation.Fallback, err)
				}
			}
			return nil
		},
	}
}

func describeMatch(m router.Match) string {
	var parts []string
	if m.Query != "" {
		parts = append(parts, "query="+m.Query)
	}
	keys := make([]string, 0, len(m.Params))
	for k := range m.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+m.Params[k])
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
