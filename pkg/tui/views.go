package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pluqqy/textpad/pkg/files"
)

// chromeHeight is the number of rows used by everything but the content area:
// header (2), actions (1) and a gap (1), content border (2), help pane (3), status (1)
const chromeHeight = 10

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	contentHeight := a.height - chromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	fileName := a.shown.FileName
	if fileName == "" {
		fileName = " "
	}

	var s strings.Builder
	s.WriteString(renderHeader(a.width, fileName))
	s.WriteString("\n")
	s.WriteString(renderActions(a.width, a.shown))
	s.WriteString("\n\n")

	var body string
	switch {
	case a.alert.Active():
		body = lipgloss.Place(a.width-4, contentHeight, lipgloss.Center, lipgloss.Center, a.alert.View())
	case a.picker.Active:
		body = a.renderPicker(a.width - 4)
	default:
		body = a.renderContent(contentHeight)
	}

	borderColor := lipgloss.Color("240")
	if a.shown.Editing && !a.picker.Active && !a.alert.Active() {
		borderColor = editColor
	}
	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(a.width - 2).
		Height(contentHeight)
	s.WriteString(contentStyle.Render(body))
	s.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(a.width - 2).
		Padding(0, 1)
	s.WriteString(helpStyle.Render(formatHelpText(a.helpItems())))
	s.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Padding(0, 1)
	if a.statusMsg != "" {
		s.WriteString(statusStyle.Render(a.statusMsg))
	}

	return s.String()
}

func (a *App) renderContent(height int) string {
	if a.shown.Editing {
		return a.textarea.View()
	}

	if a.shown.Content == "" {
		placeholder := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("Press %s to load a .txt file\nor %s to create one",
				FormatShortcutForHelp(Shortcuts.Open), FormatShortcutForHelp(Shortcuts.New)))
		return lipgloss.Place(a.width-4, height, lipgloss.Center, lipgloss.Center, placeholder)
	}

	return a.viewport.View()
}

func (a *App) helpItems() []string {
	switch {
	case a.alert.Active():
		return []string{"enter dismiss", "ctrl+c quit"}
	case a.picker.Active:
		return []string{
			"↑/↓ navigate",
			"enter open",
			"backspace up",
			"type to filter",
			FormatShortcutForHelp(Shortcuts.Hidden) + " hidden",
			FormatShortcutForHelp(Shortcuts.TextFilter) + " text only",
			"esc cancel",
		}
	}

	items := []string{
		FormatShortcutForHelp(Shortcuts.Open) + " open",
		FormatShortcutForHelp(Shortcuts.New) + " new",
	}
	if a.shown.HasContent() {
		if a.shown.Editing {
			items = append(items, FormatShortcutForHelp(Shortcuts.View)+" view")
		} else {
			items = append(items, FormatShortcutForHelp(Shortcuts.Edit)+" edit", "↑/↓ scroll")
		}
	}
	if a.shown.CanSave() {
		items = append(items, FormatShortcutForHelp(Shortcuts.Save)+" save")
	}
	return append(items, FormatShortcutForHelp(Shortcuts.Quit)+" quit")
}

func (a *App) renderPicker(width int) string {
	p := a.picker

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))
	crumbStyle := lipgloss.NewStyle().
		Foreground(mutedColor)
	selectedStyle := lipgloss.NewStyle().
		Background(primaryColor).
		Foreground(lipgloss.Color("255"))
	dirStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("75")).
		Bold(true)
	sizeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	var b strings.Builder
	b.WriteString(headerStyle.Render("OPEN FILE"))
	if p.TextOnly {
		b.WriteString(crumbStyle.Render("  (text files)"))
	}
	b.WriteString("\n")
	b.WriteString(crumbStyle.Render(strings.Join(p.Breadcrumbs(), " › ")))
	b.WriteString("\n")
	if p.FilterPattern != "" {
		b.WriteString(crumbStyle.Render("filter: ") + p.FilterPattern)
	}
	b.WriteString("\n")

	if p.Err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(p.Err.Error()))
		b.WriteString("\n")
	}

	visible := p.VisibleEntries()
	if len(visible) == 0 {
		b.WriteString(crumbStyle.Render("No matching files"))
		return b.String()
	}

	for i, entry := range visible {
		index := p.ScrollOffset + i
		name := entry.Name
		size := ""
		if entry.IsDir {
			name += "/"
		} else {
			size = files.FormatFileSize(entry.Size)
		}

		gap := width - lipgloss.Width(name) - lipgloss.Width(size) - 4
		if gap < 1 {
			gap = 1
		}
		line := "  " + name + strings.Repeat(" ", gap) + size

		switch {
		case index == p.SelectedIndex:
			line = selectedStyle.Render("▸ " + line[2:])
		case entry.IsDir:
			line = "  " + dirStyle.Render(name) + strings.Repeat(" ", gap) + size
		default:
			line = "  " + name + strings.Repeat(" ", gap) + sizeStyle.Render(size)
		}
		b.WriteString(line)
		if i < len(visible)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
