package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorBase    = lipgloss.Color("#1B1F27")
	ColorSurface = lipgloss.Color("#2B3240")
	ColorMuted   = lipgloss.Color("#7A8496")
	ColorText    = lipgloss.Color("#D8DEE9")
	ColorAccent  = lipgloss.Color("#88C0D0")
	ColorGreen   = lipgloss.Color("#A3BE8C")
	ColorRed     = lipgloss.Color("#BF616A")
	ColorYellow  = lipgloss.Color("#EBCB8B")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	ToolbarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Background(ColorSurface).
				Bold(true)

	ActiveHeaderStyle = TableHeaderStyle.
				Foreground(ColorBase).
				Background(ColorAccent)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PageStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CurrentPageStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(true)

	MenuButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface)

	MenuOpenStyle = MenuButtonStyle.
			Foreground(ColorBase).
			Background(ColorYellow)

	MenuOptionStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MenuCursorStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorYellow)

	DialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	RankStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(1, 2)
)
