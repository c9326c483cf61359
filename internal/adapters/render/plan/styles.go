package plan

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	tier     lipgloss.Style
	version  lipgloss.Style
	install  lipgloss.Style
	remove   lipgloss.Style
	reason   lipgloss.Style
	empty    lipgloss.Style
	section  lipgloss.Style
	warning  lipgloss.Style
	dryRun   lipgloss.Style
	infoNote lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		tier:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		version:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		install:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		remove:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		reason:   lipgloss.NewStyle().Faint(true),
		empty:    lipgloss.NewStyle().Faint(true),
		section:  lipgloss.NewStyle().MarginTop(1),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		dryRun:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		infoNote: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}
