package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme helpers. The TUI must stay readable on both light and dark terminal
// backgrounds, so everything routes through lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg lipgloss.TerminalColor = ac("240", "245")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorAccent  lipgloss.TerminalColor = ac("27", "62") // blue
	colorErrorFg lipgloss.TerminalColor = ac("160", "203")
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleCrumb  = lipgloss.NewStyle().Foreground(colorChromeFg)
	styleHint   = lipgloss.NewStyle().Foreground(colorMuted)
	styleFlash  = lipgloss.NewStyle().Foreground(colorErrorFg)

	styleSelectedRow = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	styleBullet      = lipgloss.NewStyle().Foreground(colorMuted)
	styleEditMarker  = lipgloss.NewStyle().Foreground(colorAccent)
)

// applyColorProfilePreference sets Lip Gloss's color profile before the
// program starts. termenv's probe can under-report what the terminal
// supports, so when TERM/COLORTERM claim more we trust the env. NO_COLOR
// always wins.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}
