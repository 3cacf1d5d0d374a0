package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabula/internal/model"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(mode model.Mode, width int) string {
	switch mode {
	case model.ModeFilter:
		return renderFilterHelp(width)
	case model.ModeColumns:
		return renderColumnsHelp(width)
	case model.ModeMenu:
		return renderMenuHelp(width)
	default:
		return renderTableHelp(width)
	}
}

func renderTableHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "page"),
		helpKey("tab", "next col"),
		helpKey("enter", "sort"),
		helpKey("/", "search"),
		helpKey("c", "columns"),
		helpKey("p", "page size"),
		helpKey("u/ctrl+r", "undo/redo"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderFilterHelp(width int) string {
	keys := []string{
		helpKey("type", "filter rows"),
		helpKey("enter", "keep"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderColumnsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "move"),
		helpKey("space", "show/hide"),
		helpKey("esc", "close"),
		helpKey("click outside", "close"),
	}
	return renderHelpLine(keys, width)
}

func renderMenuHelp(width int) string {
	keys := []string{
		helpKey("h/l", "move"),
		helpKey("enter", "select"),
		helpKey("esc", "close"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).MaxHeight(2).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(max(width-4, 0)).
		Height(max(height-6, 0)).
		Padding(1, 2)

	sections := []string{
		titleSection("Table"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg / G", "Jump to first / last row"},
			{"h / ← / pgup", "Previous page"},
			{"l / → / pgdown", "Next page"},
			{"H / L", "First / last page"},
			{"tab / shift+tab", "Cycle active column"},
			{"enter / space", "Cycle sort: none, asc, desc"},
			{"s / S", "Sort active column asc/desc"},
			{"x", "Clear sort"},
			{"u / ctrl+r", "Undo / redo"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Search"),
		helpSection([]helpItem{
			{"/", "Search all columns"},
			{"N", "Clear search"},
			{"enter", "Keep search"},
			{"esc", "Restore previous search"},
		}),
		titleSection("Columns & Page Size"),
		helpSection([]helpItem{
			{"c", "Open column selector"},
			{"C", "Show all columns"},
			{"p", "Open page size menu"},
			{"click header", "Cycle sort on that column"},
			{"click page", "Go to page"},
			{"click outside", "Close dialog or menu"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return SectionStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
