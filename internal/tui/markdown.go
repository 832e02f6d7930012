package tui

import (
	"github.com/charmbracelet/glamour"

	"twig-cli/internal/docs"
)

// renderHelp renders the embedded editing docs for the help view.
func renderHelp(width int) string {
	body, ok := docs.Get("editing")
	if !ok {
		return "no help available"
	}
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return out
}
