package tui

import (
	"path/filepath"
	"strings"

	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/files"
)

// PickerState manages file picker state ONLY - no file system operations
type PickerState struct {
	Active  bool
	Request editor.PickRequest

	// Navigation state
	CurrentPath   string
	SelectedIndex int
	ScrollOffset  int

	// File data
	Entries  []files.Entry
	Filtered []files.Entry

	// Filter state
	FilterPattern string
	ShowHidden    bool
	TextOnly      bool

	// Err is the last directory listing failure
	Err error

	MaxVisible int
}

// NewPickerState creates an inactive picker
func NewPickerState() *PickerState {
	return &PickerState{
		Entries:    []files.Entry{},
		Filtered:   []files.Entry{},
		TextOnly:   true,
		MaxVisible: 10,
	}
}

// Start activates the picker for a request
func (p *PickerState) Start(initialPath string, req editor.PickRequest, showHidden, textOnly bool) {
	p.Active = true
	p.Request = req
	p.CurrentPath = initialPath
	p.SelectedIndex = 0
	p.ScrollOffset = 0
	p.FilterPattern = ""
	p.ShowHidden = showHidden
	p.TextOnly = textOnly && req.MIMEType == editor.TextMIMEType
	p.Entries = []files.Entry{}
	p.Filtered = []files.Entry{}
	p.Err = nil
}

// Stop deactivates the picker
func (p *PickerState) Stop() {
	p.Active = false
}

// SetDirectory replaces the listing with the entries of path
func (p *PickerState) SetDirectory(path string, entries []files.Entry) {
	p.CurrentPath = path
	p.Entries = entries
	p.FilterPattern = ""
	p.SelectedIndex = 0
	p.ScrollOffset = 0
	p.Err = nil
	p.applyFilter()
}

// Refresh replaces the entries of the current directory and keeps the
// selection on the same name when it still exists
func (p *PickerState) Refresh(entries []files.Entry) {
	selected := ""
	if current := p.Current(); current != nil {
		selected = current.Name
	}

	p.Entries = entries
	p.applyFilter()

	p.SelectedIndex = 0
	for i, entry := range p.Filtered {
		if entry.Name == selected {
			p.SelectedIndex = i
			break
		}
	}
	p.adjustScroll()
}

// Current returns the selected entry, or nil when the list is empty
func (p *PickerState) Current() *files.Entry {
	if p.SelectedIndex >= 0 && p.SelectedIndex < len(p.Filtered) {
		return &p.Filtered[p.SelectedIndex]
	}
	return nil
}

// MoveUp moves the selection up
func (p *PickerState) MoveUp() {
	if p.SelectedIndex > 0 {
		p.SelectedIndex--
		p.adjustScroll()
	}
}

// MoveDown moves the selection down
func (p *PickerState) MoveDown() {
	if p.SelectedIndex < len(p.Filtered)-1 {
		p.SelectedIndex++
		p.adjustScroll()
	}
}

// PageUp moves selection up by a page
func (p *PickerState) PageUp() {
	p.SelectedIndex -= p.MaxVisible
	if p.SelectedIndex < 0 {
		p.SelectedIndex = 0
	}
	p.adjustScroll()
}

// PageDown moves selection down by a page
func (p *PickerState) PageDown() {
	p.SelectedIndex += p.MaxVisible
	if p.SelectedIndex >= len(p.Filtered) {
		p.SelectedIndex = len(p.Filtered) - 1
	}
	if p.SelectedIndex < 0 {
		p.SelectedIndex = 0
	}
	p.adjustScroll()
}

// SetFilter updates the filter pattern
func (p *PickerState) SetFilter(pattern string) {
	p.FilterPattern = pattern
	p.applyFilter()
	p.SelectedIndex = 0
	p.ScrollOffset = 0
}

// ToggleHidden toggles showing dotfiles
func (p *PickerState) ToggleHidden() {
	p.ShowHidden = !p.ShowHidden
	p.applyFilter()
	p.clampSelection()
}

// ToggleTextOnly toggles the plain-text filter
func (p *PickerState) ToggleTextOnly() {
	p.TextOnly = !p.TextOnly
	p.applyFilter()
	p.clampSelection()
}

func (p *PickerState) applyFilter() {
	p.Filtered = files.FilterEntries(p.Entries, p.FilterPattern, p.ShowHidden, p.TextOnly)
}

func (p *PickerState) clampSelection() {
	if p.SelectedIndex >= len(p.Filtered) {
		p.SelectedIndex = len(p.Filtered) - 1
	}
	if p.SelectedIndex < 0 {
		p.SelectedIndex = 0
	}
	p.adjustScroll()
}

// adjustScroll keeps the selection inside the visible window
func (p *PickerState) adjustScroll() {
	if p.SelectedIndex < p.ScrollOffset {
		p.ScrollOffset = p.SelectedIndex
	}
	if p.SelectedIndex >= p.ScrollOffset+p.MaxVisible {
		p.ScrollOffset = p.SelectedIndex - p.MaxVisible + 1
	}
	if p.ScrollOffset < 0 {
		p.ScrollOffset = 0
	}
}

// VisibleEntries returns the entries inside the scroll window
func (p *PickerState) VisibleEntries() []files.Entry {
	if len(p.Filtered) == 0 {
		return []files.Entry{}
	}

	start := p.ScrollOffset
	if start > len(p.Filtered) {
		start = len(p.Filtered)
	}
	end := start + p.MaxVisible
	if end > len(p.Filtered) {
		end = len(p.Filtered)
	}

	return p.Filtered[start:end]
}

// Breadcrumbs returns the path components of the current directory
func (p *PickerState) Breadcrumbs() []string {
	if p.CurrentPath == "" || p.CurrentPath == "." {
		return []string{"Current Directory"}
	}

	parts := strings.Split(filepath.Clean(p.CurrentPath), string(filepath.Separator))

	var crumbs []string
	for _, part := range parts {
		if part != "" {
			crumbs = append(crumbs, part)
		}
	}

	if len(crumbs) == 0 {
		return []string{"Root"}
	}
	return crumbs
}

// SetMaxVisible sets the number of rows the list may use
func (p *PickerState) SetMaxVisible(max int) {
	if max < 1 {
		max = 1
	}
	p.MaxVisible = max
	p.adjustScroll()
}
