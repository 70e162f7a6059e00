package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Sidebar        lipgloss.Style
	SidebarFocused lipgloss.Style
	Response       lipgloss.Style
	ResponseFocus  lipgloss.Style
	StatusBar      lipgloss.Style
	StatusInfo     lipgloss.Style
	StatusWarn     lipgloss.Style
	StatusError    lipgloss.Style
	StatusSuccess  lipgloss.Style
	PromptLabel    lipgloss.Style
	ResponseMeta   lipgloss.Style
	HeaderKey      lipgloss.Style
}

func DefaultTheme() Theme {
	border := lipgloss.RoundedBorder()
	dim := lipgloss.Color("240")
	accent := lipgloss.Color("39")

	return Theme{
		Sidebar:        lipgloss.NewStyle().Border(border).BorderForeground(dim),
		SidebarFocused: lipgloss.NewStyle().Border(border).BorderForeground(accent),
		Response:       lipgloss.NewStyle().Border(border).BorderForeground(dim),
		ResponseFocus:  lipgloss.NewStyle().Border(border).BorderForeground(accent),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		StatusInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		StatusWarn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		PromptLabel:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		ResponseMeta:   lipgloss.NewStyle().Foreground(dim),
		HeaderKey:      lipgloss.NewStyle().Foreground(accent),
	}
}
