package tui

import (
	"context"
	"strings"

	"twig-cli/internal/model"
	"twig-cli/internal/session"
	"twig-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	st   store.Store
	sess *session.Session

	width  int
	height int

	view  view
	modal modalKind

	docsList       list.Model
	deleteTargetID string

	rows      []outlineRow
	cursor    int
	offset    int
	collapsed map[string]bool

	editing bool
	editID  string
	input   textinput.Model

	glyphs glyphSet

	flash    string
	flashSeq int

	helpBody string
}

func newAppModel(st store.Store, sess *session.Session, docs []model.Document) appModel {
	glyphName := ""
	if cfg, err := store.LoadConfig(); err == nil {
		glyphName = cfg.TUI.Glyphs
	}

	items := docItems(docs)
	dl := list.New(items, list.NewDefaultDelegate(), 0, 0)
	dl.Title = "Documents"
	dl.SetShowStatusBar(false)
	dl.SetShowHelp(false)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0

	m := appModel{
		st:        st,
		sess:      sess,
		view:      viewOutline,
		docsList:  dl,
		collapsed: map[string]bool{},
		input:     ti,
		glyphs:    glyphsFor(glyphName),
	}
	if sess == nil {
		m.view = viewDocuments
	} else {
		m.refreshRows()
	}
	return m
}

func docItems(docs []model.Document) []list.Item {
	items := make([]list.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, docListItem{doc: d})
	}
	return items
}

func (m *appModel) refreshRows() {
	if m.sess == nil {
		m.rows = nil
		return
	}
	m.rows = flattenForest(m.sess.Forest(), m.collapsed)
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRowCount()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if visible > 0 && m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRowCount is the body height left after header and status chrome.
func (m *appModel) visibleRowCount() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// focusRow moves the selection to id, expanding collapsed ancestors so the
// row is actually visible. An empty id keeps the current (clamped) position.
func (m *appModel) focusRow(id string) {
	if id == "" {
		m.clampCursor()
		return
	}
	if idx := rowIndexOf(m.rows, id); idx >= 0 {
		m.cursor = idx
		m.clampCursor()
		return
	}
	m.expandTo(id)
	m.refreshRows()
	if idx := rowIndexOf(m.rows, id); idx >= 0 {
		m.cursor = idx
	}
	m.clampCursor()
}

// expandTo clears collapse state on every ancestor of id.
func (m *appModel) expandTo(id string) {
	f := m.sess.Forest()
	for {
		p, ok := f.Parent(id)
		if !ok {
			return
		}
		delete(m.collapsed, p.ID)
		id = p.ID
	}
}

// runOp executes one structural operation with the session's render/focus
// hooks pointed at this model, so focus lands only after the rows reflect
// the new forest state.
func (m *appModel) runOp(op func() error) error {
	m.sess.SetHooks(m.refreshRows, m.focusRow)
	err := op()
	m.sess.SetHooks(nil, nil)
	return err
}

func (m *appModel) currentRow() (outlineRow, bool) {
	if len(m.rows) == 0 || m.cursor < 0 || m.cursor >= len(m.rows) {
		return outlineRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) startEdit(id string) {
	n, ok := m.sess.Forest().Find(id)
	if !ok {
		return
	}
	m.editing = true
	m.editID = id
	m.input.SetValue(n.Content)
	m.input.CursorEnd()
	m.input.Focus()
}

// commitEdit commits the in-progress edit. The caller invokes this before
// any structural operation that might relocate or remove the node, so an
// uncommitted edit is never lost.
func (m *appModel) commitEdit() error {
	if !m.editing {
		return nil
	}
	id, text := m.editID, m.input.Value()
	m.editing = false
	m.editID = ""
	m.input.Blur()
	if err := m.sess.UpdateContent(id, text); err != nil {
		return err
	}
	m.refreshRows()
	return nil
}

func (m *appModel) reloadDocs() error {
	docs, err := m.st.ListDocuments(context.Background())
	if err != nil {
		return err
	}
	m.docsList.SetItems(docItems(docs))
	return nil
}

func (m *appModel) openDocument(ref string) error {
	sess, err := session.Open(m.st, ref)
	if err != nil {
		return err
	}
	m.sess = sess
	m.collapsed = map[string]bool{}
	m.cursor = 0
	m.offset = 0
	m.editing = false
	m.view = viewOutline
	m.refreshRows()
	return m.st.SetCurrentDocumentID(context.Background(), sess.Document().ID)
}

func (m *appModel) setFlash(msg string) tea.Cmd {
	m.flash = strings.TrimSpace(msg)
	m.flashSeq++
	seq := m.flashSeq
	return flashClearCmd(seq)
}

// flashMsg is the return-position form of setFlash: it flashes on a copy and
// returns that copy, so the shown model always carries the message.
func (m appModel) flashMsg(msg string) (tea.Model, tea.Cmd) {
	cmd := (&m).setFlash(msg)
	return m, cmd
}
