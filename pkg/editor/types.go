package editor

import (
	"context"
	"errors"
)

// DefaultNewFileName is the name given to a blank file created with New
const DefaultNewFileName = "new_file.txt"

// TextMIMEType is the picker filter used when opening a file
const TextMIMEType = "text/plain"

var (
	ErrNoFileLoaded  = errors.New("no file loaded")
	ErrBusy          = errors.New("another action is still running")
	ErrNothingToEdit = errors.New("nothing to edit")
	ErrNotEditing    = errors.New("not in edit mode")
)

// PickRequest describes what the file picker should offer
type PickRequest struct {
	MIMEType string
	// CopyToLocal asks the picker to return a location the store can read directly
	CopyToLocal bool
}

// PickResult is either a cancellation or a selected file
type PickResult struct {
	Canceled bool
	Location string
	Name     string
}

// FilePicker presents a file selection surface and reports the user's choice
type FilePicker interface {
	Pick(ctx context.Context, req PickRequest) (PickResult, error)
}

// FileStore reads and writes whole text files by location
type FileStore interface {
	Read(ctx context.Context, location string) (string, error)
	Write(ctx context.Context, location, text string) error
	// DocumentPath returns the location in the private documents area for name
	DocumentPath(name string) string
}

// ShareSheet hands a written file to other applications
type ShareSheet interface {
	IsAvailable(ctx context.Context) bool
	Share(ctx context.Context, location string) error
}

// Mode is the presentation mode derived from the controller state
type Mode int

const (
	ModeEmpty Mode = iota
	ModeViewing
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// State is a copy of the controller fields
type State struct {
	Content  string
	FileName string
	Editing  bool
}

// Mode reports which of the three screen states s is in
func (s State) Mode() Mode {
	if s.Editing {
		return ModeEditing
	}
	if s.Content == "" && s.FileName == "" {
		return ModeEmpty
	}
	return ModeViewing
}

// HasContent reports whether the edit toggle should be offered
func (s State) HasContent() bool {
	return s.Content != ""
}

// CanSave reports whether the save action should be offered
func (s State) CanSave() bool {
	return s.Content != "" && s.Editing
}

const (
	TitleSuccess = "Success"
	TitleError   = "Error"
)

// Alert is a titled message for the user. The zero Alert means nothing to show.
type Alert struct {
	Title   string
	Message string
}

// IsZero reports whether there is nothing to show
func (a Alert) IsZero() bool {
	return a.Title == "" && a.Message == ""
}

// IsError reports whether the alert describes a failure
func (a Alert) IsError() bool {
	return a.Title == TitleError
}

func successAlert(msg string) Alert {
	return Alert{Title: TitleSuccess, Message: msg}
}

func errorAlert(msg string) Alert {
	return Alert{Title: TitleError, Message: msg}
}
