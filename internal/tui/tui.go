package tui

import (
	"context"

	"twig-cli/internal/session"
	"twig-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the interactive outliner on the workspace's current document.
func Run(st store.Store, sess *session.Session) error {
	docs, err := st.ListDocuments(context.Background())
	if err != nil {
		return err
	}
	applyColorProfilePreference()
	m := newAppModel(st, sess, docs)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
