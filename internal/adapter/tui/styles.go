package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/niksmo/qkart/internal/core/domain"
)

var (
	primary     = lipgloss.Color("#00A278")
	muted       = lipgloss.Color("#7B8794")
	destructive = lipgloss.Color("#E53935")
	warning     = lipgloss.Color("#FFC107")
	info        = lipgloss.Color("#2196F3")
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	panel     lipgloss.Style
	focused   lipgloss.Style
	selected  lipgloss.Style
	muted     lipgloss.Style
	total     lipgloss.Style
	help      lipgloss.Style
	notice    map[domain.NoticeLevel]lipgloss.Style
	formLabel lipgloss.Style
}

func defaultStyles() styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	toast := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		header:   lipgloss.NewStyle().Padding(0, 1),
		panel:    panel,
		focused:  panel.BorderForeground(primary),
		selected: lipgloss.NewStyle().Bold(true).Foreground(primary),
		muted:    lipgloss.NewStyle().Foreground(muted),
		total:    lipgloss.NewStyle().Bold(true),
		help:     lipgloss.NewStyle().Foreground(muted).Italic(true),
		notice: map[domain.NoticeLevel]lipgloss.Style{
			domain.NoticeSuccess: toast.Foreground(primary),
			domain.NoticeInfo:    toast.Foreground(info),
			domain.NoticeWarning: toast.Foreground(warning),
			domain.NoticeError:   toast.Foreground(destructive),
		},
		formLabel: lipgloss.NewStyle().Width(18),
	}
}
