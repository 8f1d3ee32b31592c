package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/pkg/history"
	"github.com/vango-dev/toolbox/pkg/nav"
)

func walkCmd(flags *globalFlags) *cobra.Command {
	var (
		start   string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "walk <step>...",
		Short: "Replay a navigation sequence against in-memory history",
		Long: `Start a navigation controller on in-memory history and apply each step.

A step is a path to navigate to, or one of "back" and "forward" to move
through history like the browser buttons. The state after every step and
the final history stack are printed.

Examples:
  toolbox walk /tools /exchange-rate back forward
  toolbox walk --start=/does-not-exist /
  toolbox walk --replace /query /oil-price`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			mem := history.NewMemory(start)
			c, err := nav.New(p.table, p.registry, mem,
				nav.WithFallback(p.cfg.Navigation.Fallback),
				nav.WithFallbackPolicy(p.cfg.FallbackPolicy()),
				nav.WithLogger(p.logger),
			)
			if err != nil {
				return err
			}
			defer c.Close(cmd.Context())

			unsubscribe := c.OnEvent(func(ev nav.Event) {
				warn(w, "%s: %s%s", ev.Kind, ev.Path, eventErr(ev))
			})
			defer unsubscribe()

			st, err := c.Start(cmd.Context())
			if err != nil {
				return err
			}
			printStep(w, "start "+start, st)

			var navOpts []nav.NavigateOption
			if replace {
				navOpts = append(navOpts, nav.WithReplace())
			}
			for _, step := range args {
				switch step {
				case "back":
					if !mem.Back() {
						info(w, "back: already at the oldest entry")
						continue
					}
					st = c.State()
				case "forward":
					if !mem.Forward() {
						info(w, "forward: already at the newest entry")
						continue
					}
					st = c.State()
				default:
					st, err = c.Navigate(cmd.Context(), step, navOpts...)
					if err != nil {
						warn(w, "%s: %v", step, err)
					}
				}
				printStep(w, step, st)
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "history:")
			for i, e := range mem.Entries() {
				marker := " "
				if i == mem.Index() {
					marker = "*"
				}
				fmt.Fprintf(w, "  %s %s\n", marker, e.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "/", "Initial history entry")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the current entry instead of pushing")

	return cmd
}

func printStep(w io.Writer, step string, st nav.State) {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %s %s", step, st.Route, st.Path)
	if st.Query != "" {
		b.WriteString("?" + st.Query)
	}
	if st.Target != "" && st.Target != st.Route {
		fmt.Fprintf(&b, " (requested %s)", st.Target)
	}
	if st.Degraded {
		b.WriteString(" [degraded]")
	}
	success(w, "%s", b.String())
}

func eventErr(ev nav.Event) string {
	if ev.Err == nil {
		return ""
	}
	return ": " + ev.Err.Error()
}
