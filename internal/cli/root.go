package cli

import (
	"os"
	"strings"

	"twig-cli/internal/format"
	"twig-cli/internal/session"
	"twig-cli/internal/store"
	"twig-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "twig",
		Short:        "twig (local-first outliner) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive outliner
  twig

  # Scriptable commands
  twig documents list

  # Round-trip a document through plain text
  twig export inbox -o inbox.txt
  twig import inbox -f inbox.txt
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TWIG_DIR", ""), "Path to store dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("TWIG_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Verbose (debug) logging")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newDocumentsCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := resolveStore(app)
	if err != nil {
		return err
	}
	sess, err := session.OpenCurrent(st)
	if err != nil {
		return err
	}
	return tui.Run(st, sess)
}

// resolveStore picks the workspace directory:
// 1) --dir
// 2) --workspace
// 3) ~/.twig/config.toml current_workspace
// 4) project-local .twig discovery
// 5) the implicit "default" workspace
func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		switch {
		case app.Workspace != "":
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return store.Store{}, err
			}
			dir = d
		default:
			if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
				d, err := store.WorkspaceDir(cfg.CurrentWorkspace)
				if err != nil {
					return store.Store{}, err
				}
				app.Workspace = cfg.CurrentWorkspace
				dir = d
				break
			}
			if cwd, err := os.Getwd(); err == nil {
				if found, ok := store.DiscoverDir(cwd); ok {
					dir = found
					break
				}
			}
			app.Workspace = "default"
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return store.Store{}, err
			}
			dir = d
		}
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err.Error())
	return err
}
