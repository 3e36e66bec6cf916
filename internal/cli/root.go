package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"numlist/internal/config"
	"numlist/internal/format"
	"numlist/internal/logging"
	"numlist/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	StateDir   string
	LogFile    string
	NoColor    bool
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	def := config.DefaultClient()

	cmd := &cobra.Command{
		Use:          "numlist",
		Short:        "Browse, search, select and reorder a large numeric list",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the API server with a million items
  numlist serve

  # Start the interactive list view against it
  numlist

  # Scriptable commands
  numlist items --search 123 --page 2
  numlist select 3 7 42
  numlist order 5 3 1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive list view.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", def.ServerURL, "API server base URL (env "+config.EnvServer+")")
	cmd.PersistentFlags().StringVar(&app.StateDir, "state-dir", def.StateDir, "Directory for local view state (env "+config.EnvStateDir+")")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Append list view logs to this file")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colors")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NUMLIST_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newSelectCmd(app))
	cmd.AddCommand(newOrderCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	w, err := logging.File(app.LogFile)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer w.Close()

	log := logging.New(w, logging.ProfileRuntime, "numlist-tui")
	return tui.Run(commandContext(cmd), tui.Options{
		ServerURL: app.Server,
		StateDir:  app.StateDir,
		Logger:    log,
		NoColor:   app.NoColor,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
