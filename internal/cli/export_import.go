package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"twig-cli/internal/session"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [doc]",
		Short: "Export a document as tab-indented text",
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

			text := sess.ExportText()
			if text != "" {
				text += "\n"
			}
			if out == "" || out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			app.logger(cmd.ErrOrStderr()).Debug("exported document", "doc", sess.Document().ID, "path", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import [doc]",
		Short: "Replace a document's outline from tab-indented text",
		Long: `Replace a document's outline with tab-indented text read from a file
or stdin. Each line becomes one note; leading tabs set its depth.`,
		Args: cobra.MaximumNArgs(1),
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

			var src []byte
			if from == "" || from == "-" {
				src, err = io.ReadAll(cmd.InOrStdin())
			} else {
				src, err = os.ReadFile(from)
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := sess.ImportText(string(src)); err != nil {
				return writeErr(cmd, err)
			}
			doc := sess.Document()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"document": map[string]any{"id": doc.ID, "name": doc.Name},
				"notes":    sess.Forest().Len(),
			}})
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Read from a file instead of stdin")

	return cmd
}
