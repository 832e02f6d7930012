package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"twig-cli/internal/session"
)

func newShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [doc]",
		Short: "Print a document as an indented outline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var sess *session.Session
			if len(args) == 1 {
				sess, err = session.Open(st, args[0])
			} else {
				sess, err = session.OpenCurrent(st)
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if asJSON {
				return writeOut(cmd, app, map[string]any{"data": sess.Document()})
			}

			text := sess.ExportText()
			if text == "" {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the document snapshot as JSON")

	return cmd
}
