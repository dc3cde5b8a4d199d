package tui

import "github.com/charmbracelet/lipgloss"

// Theme centralizes the Lip Gloss styles of the terminal board.
type Theme struct {
	Title          lipgloss.Style
	Tab            lipgloss.Style
	TabActive      lipgloss.Style
	Phrase         lipgloss.Style
	PhraseEmpty    lipgloss.Style
	Cell           lipgloss.Style
	CellFolder     lipgloss.Style
	CellControl    lipgloss.Style
	CellImmediate  lipgloss.Style
	CellEmpty      lipgloss.Style
	Cursor         lipgloss.Style
	HotbarDivider  lipgloss.Style
	Status         lipgloss.Style
	Notification   lipgloss.Style
	CellWidthRange [2]int
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Theme{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Tab:   lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		TabActive: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("25")),
		Phrase: lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		PhraseEmpty: lipgloss.NewStyle().
			Faint(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Cell:           cell,
		CellFolder:     cell.Foreground(lipgloss.Color("111")),
		CellControl:    cell.Foreground(lipgloss.Color("214")).Bold(true),
		CellImmediate:  cell.Foreground(lipgloss.Color("114")),
		CellEmpty:      cell.Faint(true),
		Cursor:         cell.Reverse(true),
		HotbarDivider:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Notification:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		CellWidthRange: [2]int{8, 18},
	}
}
