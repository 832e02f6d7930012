package cli

import (
	"github.com/spf13/cobra"

	"twig-cli/internal/session"
)

func newInitCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a workspace with a first document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			lg := app.logger(cmd.ErrOrStderr())
			lg.Debug("initializing workspace", "dir", st.Dir)

			sess, err := session.Create(st, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := sess.Document()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir":      st.Dir,
				"document": map[string]any{"id": doc.ID, "name": doc.Name},
			}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "notes", "Name of the first document")
	return cmd
}
