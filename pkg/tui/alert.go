package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pluqqy/textpad/pkg/editor"
)

// AlertModel shows a titled message until the user dismisses it
type AlertModel struct {
	active bool
	alert  editor.Alert
	width  int
}

// NewAlert creates an inactive alert
func NewAlert() *AlertModel {
	return &AlertModel{}
}

// Show activates the alert. A zero alert is ignored.
func (m *AlertModel) Show(alert editor.Alert) {
	if alert.IsZero() {
		return
	}
	m.active = true
	m.alert = alert
}

// Hide deactivates the alert
func (m *AlertModel) Hide() {
	m.active = false
}

// Active returns whether the alert is currently shown
func (m *AlertModel) Active() bool {
	return m.active
}

// Current returns the alert being shown
func (m *AlertModel) Current() editor.Alert {
	return m.alert
}

// SetWidth sets the dialog width
func (m *AlertModel) SetWidth(width int) {
	m.width = width
}

// Update dismisses the alert on enter, esc or space
func (m *AlertModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "enter", "esc", " ":
		m.active = false
	}

	return nil
}

// View renders the alert dialog
func (m *AlertModel) View() string {
	if !m.active {
		return ""
	}

	width := m.width
	if width == 0 || width > 60 {
		width = 60
	}
	contentWidth := width - 4 // Account for border and padding

	titleColor := successColor
	if m.alert.IsError() {
		titleColor = errorColor
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(titleColor).
		Padding(0, 1).
		Width(width)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Width(contentWidth).
		Align(lipgloss.Center)

	messageStyle := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(contentWidth).
		Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.alert.Title))
	b.WriteString("\n\n")
	b.WriteString(messageStyle.Render(wordwrap.String(m.alert.Message, contentWidth)))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter OK"))

	return borderStyle.Render(b.String())
}
