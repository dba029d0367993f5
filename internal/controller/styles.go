package controller

import "github.com/charmbracelet/lipgloss"

// styles groups the lipgloss styles used by the console report. The
// zero-value style renders text unchanged, which is the uncolored mode.
type styles struct {
	path lipgloss.Style
	good lipgloss.Style
	bad  lipgloss.Style
	warn lipgloss.Style
}

func newStyles(colored bool) styles {
	if !colored {
		plain := lipgloss.NewStyle()

		return styles{path: plain, good: plain, bad: plain, warn: plain}
	}

	return styles{
		path: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // bright green
		good: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		bad:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")), // bright red
		warn: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // bright yellow
	}
}
