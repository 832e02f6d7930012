package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"twig-cli/internal/session"
)

func newDocumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs-list", "doc"},
		Short:   "Manage documents in the workspace",
	}
	cmd.AddCommand(newDocumentsListCmd(app))
	cmd.AddCommand(newDocumentsCreateCmd(app))
	cmd.AddCommand(newDocumentsRenameCmd(app))
	cmd.AddCommand(newDocumentsDeleteCmd(app))
	cmd.AddCommand(newDocumentsUseCmd(app))
	return cmd
}

func newDocumentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docs, err := st.ListDocuments(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			current, _ := st.CurrentDocumentID(context.Background())
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"documents": docs,
				"currentId": current,
			}})
		},
	}
}

func newDocumentsCreateCmd(app *App) *cobra.Command {
	var use bool
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			prev, _ := st.CurrentDocumentID(ctx)
			sess, err := session.Create(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !use {
				// Create marks the new document current; restore the previous
				// one unless the caller asked to switch.
				_ = st.SetCurrentDocumentID(ctx, prev)
			}
			doc := sess.Document()
			return writeOut(cmd, app, map[string]any{"data": doc})
		},
	}
	cmd.Flags().BoolVar(&use, "use", false, "Make the new document current")
	return cmd
}

func newDocumentsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <doc> <new-name>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			doc, ok, err := st.FindDocumentByName(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("document", args[0]))
			}
			doc.Name = strings.TrimSpace(args[1])
			if doc.Name == "" {
				return writeErr(cmd, fmt.Errorf("document name must not be empty"))
			}
			if err := st.SaveDocument(ctx, doc); err != nil {
				return writeErr(cmd, err)
			}
			_ = st.AppendEvent(ctx, "document.rename", doc.ID, map[string]any{"name": doc.Name})
			return writeOut(cmd, app, map[string]any{"data": doc})
		},
	}
}

func newDocumentsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <doc>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			doc, ok, err := st.FindDocumentByName(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("document", args[0]))
			}
			if err := st.DeleteDocument(ctx, doc.ID); err != nil {
				return writeErr(cmd, err)
			}
			if cur, _ := st.CurrentDocumentID(ctx); cur == doc.ID {
				_ = st.SetCurrentDocumentID(ctx, "")
			}
			_ = st.AppendEvent(ctx, "document.delete", doc.ID, map[string]any{"name": doc.Name})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": doc.ID}})
		},
	}
}

func newDocumentsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <doc>",
		Short: "Make a document the workspace's current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			doc, ok, err := st.FindDocumentByName(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("document", args[0]))
			}
			if err := st.SetCurrentDocumentID(ctx, doc.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentId": doc.ID}})
		},
	}
}
