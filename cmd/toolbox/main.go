package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌─┐┬  ┌┐ ┌─┐─┐ ┬
   ║ │ ││ ││  ├┴┐│ │┌┴┬┘
   ╩ └─┘└─┘┴─┘└─┘└─┘┴ └─
`

// useColor controls ANSI escapes in CLI messages.
var useColor = true

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dir      string
	logLevel string
	noColor  bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "toolbox",
		Short: "Route table, navigation and dev server for the toolbox app",
		Long: `Toolbox serves a single-page catalog of small utilities.

Every screen is a named route; the navigation controller resolves paths,
mounts views lazily and keeps history in sync. The CLI exposes the same
machinery:

  • serve    run the dev server with API proxies and live navigation
  • routes   print and check the route table
  • resolve  show which route a path resolves to
  • walk     replay a navigation sequence against in-memory history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
				useColor = false
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "Project directory containing toolbox.json")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides toolbox.json")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(flags),
		routesCmd(flags),
		resolveCmd(flags),
		walkCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var te *errors.ToolboxError
		if stderrors.As(err, &te) {
			fmt.Fprint(os.Stderr, te.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the toolbox ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

func mark(code, symbol string) string {
	if !useColor {
		return symbol
	}
	return "\033[" + code + "m" + symbol + "\033[0m"
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", mark("32", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", mark("33", "⚠"), fmt.Sprintf(format, args...))
}
