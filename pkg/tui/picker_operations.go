package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/files"
	"github.com/spf13/afero"
)

type pickerRequestMsg struct {
	request editor.PickRequest
}

type pickerDirLoadedMsg struct {
	path    string
	entries []files.Entry
	err     error
	// initial is set for the first listing of a pick
	initial bool
	// refresh keeps the selection instead of resetting it
	refresh bool
}

type pickerDirChangedMsg struct {
	dir string
	err error
}

// loadDirCmd lists path off the update loop
func loadDirCmd(afs afero.Fs, path string, initial, refresh bool) tea.Cmd {
	return func() tea.Msg {
		entries, err := files.LoadDirectory(afs, path)
		return pickerDirLoadedMsg{path: path, entries: entries, err: err, initial: initial, refresh: refresh}
	}
}

// pickerStartDir returns the configured start directory or the working directory
func (a *App) pickerStartDir() string {
	if dir := a.settings.Picker.StartDir; dir != "" {
		return dir
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

func (a *App) startPicker(req editor.PickRequest) tea.Cmd {
	start := a.pickerStartDir()
	a.picker.Start(start, req, a.settings.Picker.ShowHidden, a.settings.Picker.TextOnly)
	a.log.Debug().Str("dir", start).Str("mime", req.MIMEType).Msg("picker: opened")
	return loadDirCmd(a.fs, start, true, false)
}

func (a *App) handleDirLoaded(msg pickerDirLoadedMsg) tea.Cmd {
	if !a.picker.Active {
		return nil
	}

	if msg.err != nil {
		if msg.initial {
			// The picker cannot show anything, so the pick itself fails
			a.closePicker()
			a.bridge.Respond(editor.PickResult{}, msg.err)
			return nil
		}
		a.picker.Err = msg.err
		return setStatus(fmt.Sprintf("Failed to load directory: %v", msg.err))
	}

	if msg.refresh {
		if msg.path == a.picker.CurrentPath {
			a.picker.Refresh(msg.entries)
		}
		return nil
	}

	a.picker.SetDirectory(msg.path, msg.entries)
	a.watcher.Watch(msg.path)
	return nil
}

func (a *App) handleDirChanged(msg pickerDirChangedMsg) tea.Cmd {
	next := a.watcher.Wait()
	if msg.err != nil {
		a.log.Debug().Err(msg.err).Msg("picker: watcher error")
		return next
	}
	if !a.picker.Active || msg.dir == "" || filepath.Clean(msg.dir) != filepath.Clean(a.picker.CurrentPath) {
		return next
	}
	return tea.Batch(next, loadDirCmd(a.fs, a.picker.CurrentPath, false, true))
}

func (a *App) closePicker() {
	a.picker.Stop()
	a.watcher.Unwatch()
}

// handlePickerKey processes input while the picker is shown
func (a *App) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	p := a.picker
	key := msg.String()

	switch {
	case key == "up":
		p.MoveUp()
	case key == "down":
		p.MoveDown()
	case key == "pgup":
		p.PageUp()
	case key == "pgdown":
		p.PageDown()

	case key == "enter":
		current := p.Current()
		if current == nil {
			return nil
		}
		if current.IsDir {
			return loadDirCmd(a.fs, current.Path, false, false)
		}
		a.closePicker()
		a.log.Debug().Str("file", current.Path).Msg("picker: selected")
		a.bridge.Respond(editor.PickResult{Location: current.Path, Name: current.Name}, nil)

	case key == "esc":
		a.closePicker()
		a.log.Debug().Msg("picker: cancelled")
		a.bridge.Respond(editor.PickResult{Canceled: true}, nil)

	case Shortcuts.Hidden.Matches(key):
		p.ToggleHidden()

	case Shortcuts.TextFilter.Matches(key):
		p.ToggleTextOnly()

	case key == "backspace":
		if p.FilterPattern != "" {
			runes := []rune(p.FilterPattern)
			p.SetFilter(string(runes[:len(runes)-1]))
			return nil
		}
		if parent := files.ParentDirectory(p.CurrentPath); parent != "" {
			return loadDirCmd(a.fs, parent, false, false)
		}

	case msg.Type == tea.KeyRunes:
		p.SetFilter(p.FilterPattern + string(msg.Runes))
	}

	return nil
}
