package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Controller owns the screen state and mediates between user actions and
// the picker, store and share sheet.
//
// Open and Save block on their collaborators. While one of them is in
// flight every other mutating action is rejected with ErrBusy.
type Controller struct {
	picker FilePicker
	store  FileStore
	sheet  ShareSheet
	log    zerolog.Logger

	mu       sync.Mutex
	content  string
	fileName string
	editing  bool
	busy     bool
}

// NewController creates a controller with empty state
func NewController(picker FilePicker, store FileStore, sheet ShareSheet, logger zerolog.Logger) *Controller {
	return &Controller{
		picker: picker,
		store:  store,
		sheet:  sheet,
		log:    logger.With().Str("component", "editor").Logger(),
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Content:  c.content,
		FileName: c.fileName,
		Editing:  c.editing,
	}
}

// Busy reports whether an Open or Save is in flight
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Open asks the picker for a text file and loads it in view mode.
// A cancelled pick returns a zero Alert and a nil error.
func (c *Controller) Open(ctx context.Context) (Alert, error) {
	if !c.begin() {
		return busyAlert(), ErrBusy
	}
	defer c.end()

	c.log.Debug().Msg("open: picking file")
	result, err := c.picker.Pick(ctx, PickRequest{MIMEType: TextMIMEType, CopyToLocal: true})
	if err != nil {
		c.log.Warn().Err(err).Msg("open: picker failed")
		return errorAlert("Failed to read file: " + err.Error()), fmt.Errorf("failed to pick file: %w", err)
	}
	if result.Canceled {
		c.log.Debug().Msg("open: cancelled")
		return Alert{}, nil
	}

	text, err := c.store.Read(ctx, result.Location)
	if err != nil {
		c.log.Warn().Err(err).Str("location", result.Location).Msg("open: read failed")
		return errorAlert("Failed to read file: " + err.Error()), fmt.Errorf("failed to read %s: %w", result.Name, err)
	}

	c.mu.Lock()
	c.content = text
	c.fileName = result.Name
	c.editing = false
	c.mu.Unlock()

	c.log.Info().Str("file", result.Name).Int("bytes", len(text)).Msg("open: loaded")
	return successAlert(fmt.Sprintf("Loaded %s", result.Name)), nil
}

// New replaces the state with a blank file in edit mode
func (c *Controller) New() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}

	c.content = ""
	c.fileName = DefaultNewFileName
	c.editing = true
	c.log.Debug().Msg("new: blank file")
	return nil
}

// ToggleEdit flips between view and edit mode. There must be content to toggle.
func (c *Controller) ToggleEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	if c.content == "" {
		return ErrNothingToEdit
	}

	c.editing = !c.editing
	c.log.Debug().Bool("editing", c.editing).Msg("toggle edit")
	return nil
}

// Edit replaces the content verbatim
func (c *Controller) Edit(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	if !c.editing {
		return ErrNotEditing
	}

	c.content = text
	return nil
}

// Save writes the content into the documents area and offers it to the
// share sheet. When no share sheet is available a local success is reported.
func (c *Controller) Save(ctx context.Context) (Alert, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return busyAlert(), ErrBusy
	}
	if c.fileName == "" {
		c.mu.Unlock()
		c.log.Warn().Msg("save: no file loaded")
		return errorAlert("No file loaded"), ErrNoFileLoaded
	}
	c.busy = true
	name, text := c.fileName, c.content
	c.mu.Unlock()
	defer c.end()

	location := c.store.DocumentPath(name)
	if err := c.store.Write(ctx, location, text); err != nil {
		c.log.Warn().Err(err).Str("location", location).Msg("save: write failed")
		return errorAlert("Failed to save file: " + err.Error()), fmt.Errorf("failed to write %s: %w", name, err)
	}
	c.log.Info().Str("location", location).Int("bytes", len(text)).Msg("save: written")

	if !c.sheet.IsAvailable(ctx) {
		return successAlert("File saved locally"), nil
	}

	if err := c.sheet.Share(ctx, location); err != nil {
		c.log.Warn().Err(err).Str("location", location).Msg("save: share failed")
		return errorAlert("Failed to save file: " + err.Error()), fmt.Errorf("failed to share %s: %w", name, err)
	}
	c.log.Debug().Str("location", location).Msg("save: shared")
	return Alert{}, nil
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func busyAlert() Alert {
	return errorAlert("Another action is still running")
}
