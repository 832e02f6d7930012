package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"twig-cli/internal/session"
	"twig-cli/internal/store"
)

func newTestModel(t *testing.T, text string) appModel {
	t.Helper()
	t.Setenv("TWIG_CONFIG_DIR", t.TempDir())

	st := store.Store{Dir: t.TempDir()}
	sess, err := session.Create(st, "notes")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if text != "" {
		if err := sess.ImportText(text); err != nil {
			t.Fatalf("import: %v", err)
		}
	}

	m := newAppModel(st, sess, nil)
	return press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	nm, _ := m.Update(msg)
	out, ok := nm.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", nm)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestEnterInsertsSiblingAndStartsEditing(t *testing.T) {
	m := newTestModel(t, "A")

	m = press(t, m, key("enter"))

	if len(m.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.rows))
	}
	if m.rows[1].node.Content != "" {
		t.Fatalf("new row content = %q, want empty", m.rows[1].node.Content)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1 (focus follows new row)", m.cursor)
	}
	if !m.editing || m.editID != m.rows[1].node.ID {
		t.Fatalf("expected editing of new row; editing=%v editID=%q", m.editing, m.editID)
	}
}

func TestEditCommitOnEsc(t *testing.T) {
	m := newTestModel(t, "A\nB")

	m = press(t, m, key("e"))
	if !m.editing {
		t.Fatalf("expected e to start editing")
	}
	m = press(t, m, key("X"))
	m = press(t, m, key("esc"))

	if m.editing {
		t.Fatalf("expected esc to end editing")
	}
	if got := m.rows[0].node.Content; got != "AX" {
		t.Fatalf("content = %q, want AX", got)
	}
	if got := m.sess.ExportText(); got != "AX\nB" {
		t.Fatalf("export = %q, want AX\\nB", got)
	}
}

func TestTabIndentsUnderPreviousSibling(t *testing.T) {
	m := newTestModel(t, "A\nB")

	m = press(t, m, key("j"))
	m = press(t, m, key("tab"))

	if got := m.sess.ExportText(); got != "A\n\tB" {
		t.Fatalf("export = %q, want A\\n\\tB", got)
	}
	if m.rows[m.cursor].node.Content != "B" {
		t.Fatalf("focus left the indented row; cursor on %q", m.rows[m.cursor].node.Content)
	}
}

func TestTabBlockedAtMaxDepth(t *testing.T) {
	m := newTestModel(t, "A\n\tB\n\t\tC\n\t\t\tD\n\t\t\t\tE\n\t\t\t\t\tF")

	m = press(t, m, key("G"))
	if m.rows[m.cursor].node.Content != "F" {
		t.Fatalf("G did not land on last row; got %q", m.rows[m.cursor].node.Content)
	}

	before := m.sess.ExportText()
	m = press(t, m, key("tab"))

	if m.flash != "max depth reached" {
		t.Fatalf("flash = %q, want max depth reached", m.flash)
	}
	if got := m.sess.ExportText(); got != before {
		t.Fatalf("structure changed at max depth:\n%q", got)
	}
}

func TestShiftTabOutdents(t *testing.T) {
	m := newTestModel(t, "A\n\tB\nC")

	m = press(t, m, key("j"))
	m = press(t, m, key("shift+tab"))

	if got := m.sess.ExportText(); got != "A\nB\nC" {
		t.Fatalf("export = %q, want A\\nB\\nC", got)
	}
}

func TestSpaceTogglesCollapse(t *testing.T) {
	m := newTestModel(t, "A\n\tB\nC")

	m = press(t, m, key(" "))
	if len(m.rows) != 2 {
		t.Fatalf("rows after collapse = %d, want 2", len(m.rows))
	}
	m = press(t, m, key(" "))
	if len(m.rows) != 3 {
		t.Fatalf("rows after expand = %d, want 3", len(m.rows))
	}
}

func TestBackspaceDeletesOnlyEmptyRows(t *testing.T) {
	m := newTestModel(t, "A\nB")

	m = press(t, m, key("j"))
	m = press(t, m, key("backspace"))
	if len(m.rows) != 2 {
		t.Fatalf("backspace deleted a non-empty row; rows = %d", len(m.rows))
	}

	m = press(t, m, key("ctrl+d"))
	if len(m.rows) != 1 || m.rows[0].node.Content != "A" {
		t.Fatalf("ctrl+d did not delete; rows = %v", rowContents(m.rows))
	}
}

func TestDeleteSplicesChildrenIntoView(t *testing.T) {
	m := newTestModel(t, "A\nB\n\tC\n\tD\nE")

	m = press(t, m, key("j"))
	if m.rows[m.cursor].node.Content != "B" {
		t.Fatalf("cursor on %q, want B", m.rows[m.cursor].node.Content)
	}
	m = press(t, m, key("ctrl+d"))

	if got := m.sess.ExportText(); got != "A\nC\nD\nE" {
		t.Fatalf("export = %q, want A\\nC\\nD\\nE", got)
	}
	// Focus lands on the first spliced child.
	if m.rows[m.cursor].node.Content != "C" {
		t.Fatalf("cursor on %q, want C", m.rows[m.cursor].node.Content)
	}
}

func TestDeleteFirstRootClearsContent(t *testing.T) {
	m := newTestModel(t, "A")

	m = press(t, m, key("ctrl+d"))

	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, want 1 (anchor stays)", len(m.rows))
	}
	if m.rows[0].node.Content != "" {
		t.Fatalf("anchor content = %q, want empty", m.rows[0].node.Content)
	}
}

func TestFocusExpandsCollapsedAncestors(t *testing.T) {
	m := newTestModel(t, "A\n\tB\nC")

	b := m.rows[1].node.ID
	m = press(t, m, key(" ")) // collapse A, hiding B

	(&m).focusRow(b)

	if idx := rowIndexOf(m.rows, b); idx < 0 {
		t.Fatalf("focus target still hidden after focusRow")
	}
	if m.rows[m.cursor].node.ID != b {
		t.Fatalf("cursor not on focus target")
	}
}
