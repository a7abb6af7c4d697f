package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/models"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const statusDuration = 4 * time.Second

// Config wires the screen to its controller and collaborators
type Config struct {
	Controller *editor.Controller
	// Bridge must be the picker (or the fallback of the picker) the controller uses
	Bridge   *PickerBridge
	Fs       afero.Fs
	Settings *models.Settings
	Logger   zerolog.Logger
	// OpenOnStart runs Open once at start-up, for a file named on the command line
	OpenOnStart bool
	// WatchDirs refreshes the picker listing on filesystem changes
	WatchDirs bool
	Context   context.Context
}

// App is the single text editor screen
type App struct {
	ctx      context.Context
	ctrl     *editor.Controller
	bridge   *PickerBridge
	fs       afero.Fs
	settings *models.Settings
	log      zerolog.Logger

	width  int
	height int

	textarea  textarea.Model
	viewport  viewport.Model
	picker    *PickerState
	alert     *AlertModel
	watcher   *dirWatcher
	shown     editor.State
	buffer    *editBuffer

	openOnStart bool
	statusMsg   string
	statusID    int
}

// NewApp creates the screen
func NewApp(cfg Config) *App {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = "  "
	ta.Placeholder = "Start typing..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetWidth(80)
	ta.SetHeight(20)

	settings := cfg.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	afs := cfg.Fs
	if afs == nil {
		afs = afero.NewOsFs()
	}

	a := &App{
		ctx:         ctx,
		ctrl:        cfg.Controller,
		bridge:      cfg.Bridge,
		fs:          afs,
		settings:    settings,
		log:         cfg.Logger.With().Str("component", "tui").Logger(),
		textarea:    ta,
		buffer:      newEditBuffer(""),
		viewport:    viewport.New(80, 20),
		picker:      NewPickerState(),
		alert:       NewAlert(),
		openOnStart: cfg.OpenOnStart,
	}
	if cfg.WatchDirs {
		a.watcher = newDirWatcher(a.log)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.bridge.WaitForRequest()}
	if a.watcher != nil {
		cmds = append(cmds, a.watcher.Wait())
	}
	if a.openOnStart {
		cmds = append(cmds, a.openCmd())
	}
	if tip := GetTerminalSetupMessage(); tip != "" {
		cmds = append(cmds, setStatus(tip))
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if Shortcuts.Quit.Matches(msg.String()) {
			a.shutdown()
			return a, tea.Quit
		}
		if a.alert.Active() {
			return a, a.alert.Update(msg)
		}
		if a.picker.Active {
			return a, a.handlePickerKey(msg)
		}
		return a, a.handleKey(msg)

	case pickerRequestMsg:
		return a, tea.Batch(a.startPicker(msg.request), a.bridge.WaitForRequest())

	case pickerDirLoadedMsg:
		return a, a.handleDirLoaded(msg)

	case pickerDirChangedMsg:
		return a, a.handleDirChanged(msg)

	case actionDoneMsg:
		return a, a.handleActionDone(msg)

	case StatusMsg:
		a.statusID++
		a.statusMsg = string(msg)
		id := a.statusID
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{id: id}
		})

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.statusMsg = ""
		}
		return a, nil
	}

	// Cursor blink and other internal messages
	var cmd tea.Cmd
	if a.shown.Editing {
		a.textarea, cmd = a.textarea.Update(msg)
	} else {
		a.viewport, cmd = a.viewport.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	editing := a.shown.Editing

	switch {
	case Shortcuts.Open.Matches(key) || (!editing && key == "o"):
		if a.ctrl.Busy() {
			return setStatus("Another action is still running")
		}
		return a.openCmd()

	case Shortcuts.New.Matches(key) || (!editing && key == "n"):
		return a.applyLocal(a.ctrl.New())

	case Shortcuts.Save.Matches(key):
		if a.ctrl.Busy() {
			return setStatus("Another action is still running")
		}
		return a.saveCmd()

	case editing && Shortcuts.View.Matches(key):
		return a.applyLocal(a.ctrl.ToggleEdit())

	case !editing && Shortcuts.Edit.Matches(key):
		return a.applyLocal(a.ctrl.ToggleEdit())

	case !editing && key == "q":
		a.shutdown()
		return tea.Quit
	}

	var cmd tea.Cmd
	if editing {
		// A save in flight writes the content as it was when it started
		if a.ctrl.Busy() {
			return setStatus(errorStatus(editor.ErrBusy))
		}
		a.textarea, cmd = a.textarea.Update(msg)
		value := a.textarea.Value()
		if value == a.buffer.Display() {
			return cmd
		}
		next := a.buffer.apply(value)
		if err := a.ctrl.Edit(next.Content()); err != nil {
			a.textarea.SetValue(a.buffer.Display())
			return tea.Batch(cmd, setStatus(errorStatus(err)))
		}
		a.buffer = next
		a.shown.Content = next.Content()
		return cmd
	}

	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

// applyLocal refreshes the screen after an action that needs no collaborator
func (a *App) applyLocal(err error) tea.Cmd {
	if err != nil {
		return setStatus(errorStatus(err))
	}
	return a.sync()
}

func (a *App) openCmd() tea.Cmd {
	ctrl, ctx := a.ctrl, a.ctx
	return func() tea.Msg {
		alert, err := ctrl.Open(ctx)
		return actionDoneMsg{action: actionOpen, alert: alert, err: err}
	}
}

func (a *App) saveCmd() tea.Cmd {
	ctrl, ctx := a.ctrl, a.ctx
	return func() tea.Msg {
		alert, err := ctrl.Save(ctx)
		return actionDoneMsg{action: actionSave, alert: alert, err: err}
	}
}

func (a *App) handleActionDone(msg actionDoneMsg) tea.Cmd {
	cmd := a.sync()
	if msg.err != nil {
		a.log.Debug().Err(msg.err).Str("action", msg.action).Msg("action failed")
	}

	if !msg.alert.IsZero() {
		a.alert.Show(msg.alert)
		return cmd
	}

	if msg.action == actionSave && msg.err == nil {
		return tea.Batch(cmd, setStatus("✓ Saved and shared "+a.shown.FileName))
	}
	return cmd
}

// sync copies the controller state onto the widgets
func (a *App) sync() tea.Cmd {
	prev := a.shown
	state := a.ctrl.Snapshot()
	a.shown = state

	if state.Editing {
		var cmd tea.Cmd
		if !prev.Editing || prev.FileName != state.FileName || a.buffer.Content() != state.Content {
			a.loadTextarea(state.Content)
		}
		if !a.textarea.Focused() {
			cmd = a.textarea.Focus()
		}
		return cmd
	}

	a.textarea.Blur()
	if prev.Editing || prev.FileName != state.FileName || prev.Content != state.Content {
		a.refreshViewport()
		if prev.FileName != state.FileName {
			a.viewport.GotoTop()
		}
	}
	return nil
}

// loadTextarea puts content in the textarea, keeping the bytes it cannot show
func (a *App) loadTextarea(content string) {
	a.buffer = newEditBuffer(content)
	a.textarea.SetValue(a.buffer.Display())
	if value := a.textarea.Value(); value != a.buffer.Display() {
		// The textarea caps the number of lines it holds
		a.log.Warn().Str("file", a.shown.FileName).Msg("content truncated in the editor")
		a.buffer = a.buffer.apply(value)
	}
}

func (a *App) refreshViewport() {
	content := displayText(a.shown.Content)
	if a.settings.UI.Wrap && a.viewport.Width > 0 {
		content = wordwrap.String(content, a.viewport.Width)
	}
	a.viewport.SetContent(content)
}

// SetSize lays the widgets out for a terminal of width x height
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height

	contentWidth := width - 4 // Border and padding
	if contentWidth < 10 {
		contentWidth = 10
	}
	contentHeight := height - chromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	a.textarea.SetWidth(contentWidth)
	a.textarea.SetHeight(contentHeight)
	a.viewport.Width = contentWidth
	a.viewport.Height = contentHeight
	a.picker.SetMaxVisible(contentHeight - 4)
	a.alert.SetWidth(width - 4)

	if !a.shown.Editing {
		a.refreshViewport()
	}
}

func (a *App) shutdown() {
	a.watcher.Close()
}

// State returns the state currently on screen
func (a *App) State() editor.State {
	return a.shown
}

// StatusMsg is shown in the status bar for a few seconds
type StatusMsg string

type clearStatusMsg struct {
	id int
}

const (
	actionOpen = "open"
	actionSave = "save"
)

type actionDoneMsg struct {
	action string
	alert  editor.Alert
	err    error
}

func setStatus(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}

func errorStatus(err error) string {
	switch {
	case errors.Is(err, editor.ErrBusy):
		return "Another action is still running"
	case errors.Is(err, editor.ErrNothingToEdit):
		return "Open a file or type some text first"
	default:
		return "Error: " + err.Error()
	}
}
