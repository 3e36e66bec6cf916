package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The list must stay readable on light and dark terminals, so colors are adaptive and
// faint styling is only applied on dark backgrounds.

const envTheme = "NUMLIST_TUI_THEME"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "235")
	colorAccent     = ac("27", "62")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorDropBg     = ac("153", "24")
	colorErrorFg    = ac("160", "203")
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	row       lipgloss.Style
	cursor    lipgloss.Style
	dragging  lipgloss.Style
	dropPoint lipgloss.Style
	checked   lipgloss.Style
	muted     lipgloss.Style
	err       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		header: faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		row:    lipgloss.NewStyle().Foreground(colorSurfaceFg),
		cursor: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		dragging:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		dropPoint: lipgloss.NewStyle().Background(colorDropBg),
		checked:   lipgloss.NewStyle().Foreground(colorAccent),
		muted:     faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		err:       lipgloss.NewStyle().Foreground(colorErrorFg),
	}
}

// applyColorProfile sets Lip Gloss's color profile. NO_COLOR or noColor forces plain
// output; otherwise the terminal's reported profile is used, upgraded when TERM or
// COLORTERM advertise more than the detector found.
func applyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(os.Getenv("TERM"))
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case profile == termenv.Ascii:
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		profile = termenv.TrueColor
	case strings.Contains(term, "256color") && profile == termenv.ANSI:
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// themeName is "light" or "dark": NUMLIST_TUI_THEME wins, then Lip Gloss's background
// detection.
func themeName() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envTheme))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
