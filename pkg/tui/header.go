package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pluqqy/textpad/pkg/editor"
)

var (
	primaryColor = lipgloss.Color("#3b82f6")
	editColor    = lipgloss.Color("#f97316")
	saveColor    = lipgloss.Color("#22c55e")
	successColor = lipgloss.Color("#22c55e")
	errorColor   = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("245")
)

func renderHeader(width int, fileName string) string {
	titleStyle := lipgloss.NewStyle().
		Background(primaryColor).
		Foreground(lipgloss.Color("255")).
		Bold(true).
		Width(width).
		Align(lipgloss.Center)

	fileStyle := lipgloss.NewStyle().
		Background(primaryColor).
		Foreground(lipgloss.Color("254")).
		Width(width).
		Align(lipgloss.Center)

	header := titleStyle.Render("Text Editor")
	if fileName != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, fileStyle.Render(fileName))
	}
	return header
}

// renderActions draws the action buttons offered for the current state
func renderActions(width int, state editor.State) string {
	button := func(label, key string, bg lipgloss.Color) string {
		return lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 2).
			Render(label + " (" + key + ")")
	}

	buttons := []string{
		button("Open File", FormatShortcutForHelp(Shortcuts.Open), primaryColor),
		button("New File", FormatShortcutForHelp(Shortcuts.New), primaryColor),
	}

	if state.HasContent() {
		if state.Editing {
			buttons = append(buttons, button("View", FormatShortcutForHelp(Shortcuts.View), editColor))
		} else {
			buttons = append(buttons, button("Edit", FormatShortcutForHelp(Shortcuts.Edit), editColor))
		}
	}

	if state.CanSave() {
		buttons = append(buttons, button("Save", FormatShortcutForHelp(Shortcuts.Save), saveColor))
	}

	row := strings.Join(buttons, " ")
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(row)
}

// formatHelpText joins help items into a single line
func formatHelpText(items []string) string {
	return lipgloss.NewStyle().
		Foreground(mutedColor).
		Render(strings.Join(items, " • "))
}
