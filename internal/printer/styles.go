package printer

import "github.com/charmbracelet/lipgloss"

// styles maps field states to render functions. With NoColor every
// function is the identity, which keeps golden files byte-stable.
type styles struct {
	overdue func(string) string
	flagged func(string) string
	missing func(string) string
	warn    func(string) string
	dim     func(string) string
}

func newStyles(noColor bool) styles {
	if noColor {
		id := func(s string) string { return s }
		return styles{overdue: id, flagged: id, missing: id, warn: id, dim: id}
	}

	overdue := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	flagged := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	missing := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dim := lipgloss.NewStyle().Faint(true)

	return styles{
		overdue: func(s string) string { return overdue.Render(s) },
		flagged: func(s string) string { return flagged.Render(s) },
		missing: func(s string) string { return missing.Render(s) },
		warn:    func(s string) string { return warn.Render(s) },
		dim:     func(s string) string { return dim.Render(s) },
	}
}
