package tui

import (
	"strings"

	"twig-cli/internal/forest"
	"twig-cli/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

// outlineRow is one visible line of the outline view.
type outlineRow struct {
	node        *model.Node
	depth       int
	hasChildren bool
	collapsed   bool
}

// flattenForest walks the forest depth-first into display rows, skipping the
// descendants of collapsed nodes. Collapse state is presentation-only; it
// never touches the forest.
func flattenForest(f *forest.Forest, collapsed map[string]bool) []outlineRow {
	var out []outlineRow
	var walk func(n *model.Node, depth int)
	walk = func(n *model.Node, depth int) {
		out = append(out, outlineRow{
			node:        n,
			depth:       depth,
			hasChildren: len(n.Children) > 0,
			collapsed:   collapsed[n.ID],
		})
		if collapsed[n.ID] {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range f.Roots() {
		walk(r, 0)
	}
	return out
}

func rowIndexOf(rows []outlineRow, id string) int {
	for i := range rows {
		if rows[i].node.ID == id {
			return i
		}
	}
	return -1
}

// renderOutlineRow renders one row at the given width. ANSI styling is
// terminated on truncation to prevent bleed into the next line.
func renderOutlineRow(width int, row outlineRow, selected bool, editView string, glyphs glyphSet) string {
	indent := strings.Repeat("  ", row.depth)

	marker := glyphs.bullet
	if row.hasChildren {
		if row.collapsed {
			marker = glyphs.collapsed
		} else {
			marker = glyphs.expanded
		}
	}

	var body string
	if editView != "" {
		body = indent + styleEditMarker.Render(marker) + " " + editView
	} else {
		content := row.node.Content
		if content == "" {
			content = styleHint.Render("(empty)")
		}
		body = indent + styleBullet.Render(marker) + " " + content
	}

	if selected && editView == "" {
		pad := width - xansi.StringWidth(body)
		if pad > 0 {
			body += strings.Repeat(" ", pad)
		}
		body = styleSelectedRow.Render(body)
	}
	if width > 0 && xansi.StringWidth(body) > width {
		body = xansi.Cut(body, 0, width) + "\x1b[0m"
	}
	return body
}

// docListItem adapts a document to the bubbles list.
type docListItem struct {
	doc model.Document
}

func (d docListItem) Title() string { return d.doc.Name }
func (d docListItem) Description() string {
	return d.doc.ID + " · updated " + d.doc.UpdatedAt.Local().Format("2006-01-02 15:04")
}
func (d docListItem) FilterValue() string { return d.doc.Name }
