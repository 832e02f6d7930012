package tui

import (
	"context"
	"time"

	"twig-cli/internal/forest"
	"twig-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func flashClearCmd(seq int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.docsList.SetSize(msg.Width, msg.Height-2)
		m.input.Width = msg.Width - 8
		(&m).clampCursor()
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewDocuments:
			return m.updateDocuments(msg)
		case viewOutline:
			return m.updateOutline(msg)
		case viewHelp:
			switch msg.String() {
			case "q", "esc", "?":
				m.view = viewOutline
				if m.sess == nil {
					m.view = viewDocuments
				}
			}
			return m, nil
		}
	}

	if m.view == viewDocuments {
		var cmd tea.Cmd
		m.docsList, cmd = m.docsList.Update(msg)
		return m, cmd
	}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateDocuments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.docsList.SettingFilter() {
		var cmd tea.Cmd
		m.docsList, cmd = m.docsList.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.helpBody = renderHelp(m.width - 4)
		m.view = viewHelp
		return m, nil
	case "n":
		m.modal = modalNewDocument
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "D":
		if it, ok := m.docsList.SelectedItem().(docListItem); ok {
			m.deleteTargetID = it.doc.ID
			m.modal = modalConfirmDeleteDocument
		}
		return m, nil
	case "enter":
		if it, ok := m.docsList.SelectedItem().(docListItem); ok {
			if err := (&m).openDocument(it.doc.ID); err != nil {
				return m.flashMsg(err.Error())
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.docsList, cmd = m.docsList.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewDocument:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			m.input.Blur()
			return m, nil
		case "enter":
			name := m.input.Value()
			m.modal = modalNone
			m.input.Blur()
			sess, err := session.Create(m.st, name)
			if err != nil {
				return m.flashMsg(err.Error())
			}
			m.sess = sess
			m.collapsed = map[string]bool{}
			m.cursor = 0
			m.offset = 0
			m.view = viewOutline
			(&m).refreshRows()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modalConfirmDeleteDocument:
		switch msg.String() {
		case "y", "enter":
			id := m.deleteTargetID
			m.modal = modalNone
			m.deleteTargetID = ""
			if err := m.st.DeleteDocument(context.Background(), id); err != nil {
				return m.flashMsg(err.Error())
			}
			if m.sess != nil && m.sess.Document().ID == id {
				m.sess = nil
			}
			if err := (&m).reloadDocs(); err != nil {
				return m.flashMsg(err.Error())
			}
			return m, nil
		case "n", "esc", "q":
			m.modal = modalNone
			m.deleteTargetID = ""
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateOutlineEditing(msg)
	}

	row, hasRow := m.currentRow()

	switch msg.String() {
	case "q", "esc":
		if err := (&m).reloadDocs(); err != nil {
			return m.flashMsg(err.Error())
		}
		m.view = viewDocuments
		return m, nil
	case "?":
		m.helpBody = renderHelp(m.width - 4)
		m.view = viewHelp
		return m, nil

	case "up", "k", "ctrl+p":
		m.cursor--
		(&m).clampCursor()
		return m, nil
	case "down", "j", "ctrl+n":
		m.cursor++
		(&m).clampCursor()
		return m, nil
	case "home", "g":
		m.cursor = 0
		(&m).clampCursor()
		return m, nil
	case "end", "G":
		m.cursor = len(m.rows) - 1
		(&m).clampCursor()
		return m, nil

	case " ":
		if hasRow && row.hasChildren {
			m.collapsed[row.node.ID] = !m.collapsed[row.node.ID]
			(&m).refreshRows()
		}
		return m, nil

	case "e", "i":
		if hasRow {
			(&m).startEdit(row.node.ID)
		}
		return m, nil

	case "enter":
		if !hasRow {
			return m, nil
		}
		var newID string
		err := (&m).runOp(func() error {
			id, err := m.sess.InsertSiblingAfter(row.node.ID)
			newID = id
			return err
		})
		if err != nil {
			return m.flashMsg(err.Error())
		}
		if newID != "" {
			(&m).startEdit(newID)
		}
		return m, nil

	case "tab":
		if !hasRow {
			return m, nil
		}
		if m.sess.Forest().Depth(row.node.ID) >= forest.MaxDepth {
			return m.flashMsg("max depth reached")
		}
		if err := (&m).runOp(func() error { return m.sess.Indent(row.node.ID) }); err != nil {
			return m.flashMsg(err.Error())
		}
		return m, nil

	case "shift+tab", "backtab":
		if !hasRow {
			return m, nil
		}
		if err := (&m).runOp(func() error { return m.sess.Outdent(row.node.ID) }); err != nil {
			return m.flashMsg(err.Error())
		}
		return m, nil

	case "ctrl+d", "backspace":
		if !hasRow {
			return m, nil
		}
		if msg.String() == "backspace" && row.node.Content != "" {
			// Backspace only deletes empty rows; ctrl+d deletes regardless.
			return m, nil
		}
		if err := (&m).runOp(func() error { return m.sess.Delete(row.node.ID) }); err != nil {
			return m.flashMsg(err.Error())
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateOutlineEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editID := m.editID

	switch msg.String() {
	case "esc":
		if err := (&m).commitEdit(); err != nil {
			return m.flashMsg(err.Error())
		}
		return m, nil

	case "enter":
		// Commit, then open a fresh sibling below and keep typing.
		if err := (&m).commitEdit(); err != nil {
			return m.flashMsg(err.Error())
		}
		var newID string
		err := (&m).runOp(func() error {
			id, err := m.sess.InsertSiblingAfter(editID)
			newID = id
			return err
		})
		if err != nil {
			return m.flashMsg(err.Error())
		}
		if newID != "" {
			(&m).startEdit(newID)
		}
		return m, nil

	case "tab":
		if err := (&m).commitEdit(); err != nil {
			return m.flashMsg(err.Error())
		}
		if m.sess.Forest().Depth(editID) >= forest.MaxDepth {
			return m.flashMsg("max depth reached")
		}
		if err := (&m).runOp(func() error { return m.sess.Indent(editID) }); err != nil {
			return m.flashMsg(err.Error())
		}
		(&m).startEdit(editID)
		return m, nil

	case "shift+tab", "backtab":
		if err := (&m).commitEdit(); err != nil {
			return m.flashMsg(err.Error())
		}
		if err := (&m).runOp(func() error { return m.sess.Outdent(editID) }); err != nil {
			return m.flashMsg(err.Error())
		}
		if _, ok := m.sess.Forest().Find(editID); ok {
			(&m).startEdit(editID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
