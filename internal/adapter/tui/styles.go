package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#101F38")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#8a94a6")
	colorDanger  = lipgloss.Color("#e53935")
	colorBorder  = lipgloss.Color("#dce0e5")
)

// Styles holds the lipgloss styles of both screens.
type Styles struct {
	Logo       lipgloss.Style
	Nav        lipgloss.Style
	NavActive  lipgloss.Style
	Badge      lipgloss.Style
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Filter     lipgloss.Style
	StateCard  lipgloss.Style
	Error      lipgloss.Style
	Cursor     lipgloss.Style
	Name       lipgloss.Style
	Category   lipgloss.Style
	Price      lipgloss.Style
	Button     lipgloss.Style
	OutOfStock lipgloss.Style
	Summary    lipgloss.Style
	Total      lipgloss.Style
	Status     lipgloss.Style
	Footer     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Logo:       lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Nav:        lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		NavActive:  lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
		Badge:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorAccent).Padding(0, 1),
		Title:      lipgloss.NewStyle().Bold(true).MarginTop(1),
		Subtitle:   lipgloss.NewStyle().Foreground(colorMuted),
		Filter:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		StateCard:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(1, 2),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
		Cursor:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Name:       lipgloss.NewStyle().Bold(true),
		Category:   lipgloss.NewStyle().Foreground(colorMuted),
		Price:      lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Button:     lipgloss.NewStyle().Foreground(colorAccent),
		OutOfStock: lipgloss.NewStyle().Foreground(colorDanger),
		Summary:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 2),
		Total:      lipgloss.NewStyle().Bold(true),
		Status:     lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Footer:     lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
