package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	switch m.view {
	case viewHelp:
		return m.viewHelp()
	case viewDocuments:
		return m.viewDocuments()
	default:
		return m.viewOutline()
	}
}

func (m appModel) viewHelp() string {
	footer := styleHint.Render("q/esc back")
	return m.helpBody + "\n" + footer
}

func (m appModel) viewDocuments() string {
	var b strings.Builder
	b.WriteString(m.docsList.View())
	b.WriteString("\n")
	switch m.modal {
	case modalNewDocument:
		b.WriteString(styleHeader.Render("New document: ") + m.input.View() + "\n")
	case modalConfirmDeleteDocument:
		b.WriteString(styleFlash.Render("Delete document? y/n") + "\n")
	default:
		b.WriteString(m.statusLine("enter open · n new · D delete · ? help · q quit"))
	}
	return b.String()
}

func (m appModel) viewOutline() string {
	var b strings.Builder

	title := "(untitled)"
	if m.sess != nil {
		title = m.sess.Document().Name
	}
	b.WriteString(styleHeader.Render(title))
	b.WriteString(" ")
	b.WriteString(styleCrumb.Render("· " + m.st.Dir))
	b.WriteString("\n")

	visible := m.visibleRowCount()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		editView := ""
		if m.editing && row.node.ID == m.editID {
			editView = m.input.View()
		}
		b.WriteString(renderOutlineRow(m.width, row, i == m.cursor, editView, m.glyphs))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.statusLine("esc commit · enter commit+new · tab indent · shift+tab outdent"))
	} else {
		b.WriteString(m.statusLine("enter new · tab/shift+tab move · ctrl+d delete · space fold · e edit · q docs"))
	}
	return b.String()
}

func (m appModel) statusLine(hint string) string {
	if m.flash != "" {
		return styleFlash.Render(m.flash)
	}
	line := styleHint.Render(hint)
	if lipgloss.Width(line) > m.width && m.width > 0 {
		return styleHint.Render(hint[:m.width])
	}
	return line
}
