package tui

import (
	"context"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/rs/zerolog"
)

var (
	_ editor.FilePicker = (*PickerBridge)(nil)
	_ editor.FilePicker = (*OncePicker)(nil)
)

type pickResponse struct {
	result editor.PickResult
	err    error
}

// PickerBridge lets the controller block on a pick while the Bubble Tea
// loop shows the picker. Pick hands its request to the UI and waits for
// Respond.
type PickerBridge struct {
	requests chan editor.PickRequest
	results  chan pickResponse
}

// NewPickerBridge creates a bridge with no pending pick
func NewPickerBridge() *PickerBridge {
	return &PickerBridge{
		requests: make(chan editor.PickRequest),
		results:  make(chan pickResponse, 1),
	}
}

// Pick blocks until the UI responds or ctx is done
func (b *PickerBridge) Pick(ctx context.Context, req editor.PickRequest) (editor.PickResult, error) {
	// Drop an answer meant for an abandoned pick
	select {
	case <-b.results:
	default:
	}

	select {
	case b.requests <- req:
	case <-ctx.Done():
		return editor.PickResult{}, ctx.Err()
	}

	select {
	case resp := <-b.results:
		return resp.result, resp.err
	case <-ctx.Done():
		return editor.PickResult{}, ctx.Err()
	}
}

// Respond delivers the user's choice to the waiting Pick. A response with
// nobody waiting is dropped.
func (b *PickerBridge) Respond(result editor.PickResult, err error) {
	select {
	case b.results <- pickResponse{result: result, err: err}:
	default:
	}
}

// WaitForRequest returns a command that delivers the next pick request to the UI
func (b *PickerBridge) WaitForRequest() tea.Cmd {
	return func() tea.Msg {
		return pickerRequestMsg{request: <-b.requests}
	}
}

// OncePicker returns a preselected file on the first pick and defers to
// next afterwards. It backs opening a file named on the command line.
type OncePicker struct {
	mu    sync.Mutex
	first *editor.PickResult
	next  editor.FilePicker
}

// NewOncePicker creates a picker that answers the first pick with location
func NewOncePicker(location string, next editor.FilePicker) *OncePicker {
	return &OncePicker{
		first: &editor.PickResult{Location: location, Name: filepath.Base(location)},
		next:  next,
	}
}

// Pending reports whether the preselected file has not been used yet
func (p *OncePicker) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.first != nil
}

func (p *OncePicker) Pick(ctx context.Context, req editor.PickRequest) (editor.PickResult, error) {
	p.mu.Lock()
	if p.first != nil {
		result := *p.first
		p.first = nil
		p.mu.Unlock()
		return result, nil
	}
	p.mu.Unlock()
	return p.next.Pick(ctx, req)
}

// dirWatcher reports changes to the directory the picker is showing
type dirWatcher struct {
	w    *fsnotify.Watcher
	path string
	log  zerolog.Logger
}

func newDirWatcher(logger zerolog.Logger) *dirWatcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("picker: directory watching disabled")
		return &dirWatcher{log: logger}
	}
	return &dirWatcher{w: w, log: logger}
}

// Watch switches the watch to path
func (d *dirWatcher) Watch(path string) {
	if d == nil || d.w == nil || path == d.path {
		return
	}
	d.Unwatch()
	if err := d.w.Add(path); err != nil {
		d.log.Debug().Err(err).Str("dir", path).Msg("picker: cannot watch directory")
		return
	}
	d.path = path
}

// Unwatch stops watching the current directory
func (d *dirWatcher) Unwatch() {
	if d == nil || d.w == nil || d.path == "" {
		return
	}
	_ = d.w.Remove(d.path)
	d.path = ""
}

// Wait returns a command that delivers the next change event
func (d *dirWatcher) Wait() tea.Cmd {
	if d == nil || d.w == nil {
		return nil
	}
	w := d.w
	return func() tea.Msg {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				return pickerDirChangedMsg{}
			}
			return pickerDirChangedMsg{dir: filepath.Dir(event.Name)}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return pickerDirChangedMsg{err: err}
		}
	}
}

// Close releases the watcher
func (d *dirWatcher) Close() {
	if d == nil || d.w == nil {
		return
	}
	_ = d.w.Close()
}
