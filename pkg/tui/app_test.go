package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/files"
	"github.com/pluqqy/textpad/pkg/models"
	"github.com/pluqqy/textpad/pkg/share"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSheet struct {
	shared []string
}

func (s *recordingSheet) IsAvailable(ctx context.Context) bool { return true }

func (s *recordingSheet) Share(ctx context.Context, location string) error {
	s.shared = append(s.shared, location)
	return nil
}

type testEnv struct {
	app    *App
	fs     afero.Fs
	bridge *PickerBridge
	ctrl   *editor.Controller
}

func newTestEnv(t *testing.T, sheet editor.ShareSheet) *testEnv {
	t.Helper()

	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/home/docs", 0755))
	require.NoError(t, afero.WriteFile(afs, "/home/notes.txt", []byte("hello"), 0644))
	require.NoError(t, afero.WriteFile(afs, "/home/photo.png", []byte{0x89, 0x50}, 0644))

	settings := models.DefaultSettings()
	settings.Picker.StartDir = "/home"

	bridge := NewPickerBridge()
	store := files.NewStore(afs, "/data/documents")
	ctrl := editor.NewController(bridge, store, sheet, zerolog.Nop())

	app := NewApp(Config{
		Controller: ctrl,
		Bridge:     bridge,
		Fs:         afs,
		Settings:   settings,
		Logger:     zerolog.Nop(),
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return &testEnv{app: app, fs: afs, bridge: bridge, ctrl: ctrl}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// startOpen presses the open shortcut and drives the picker until it lists
// the start directory. The returned channel yields the finished action.
func (e *testEnv) startOpen(t *testing.T) <-chan tea.Msg {
	t.Helper()

	_, cmd := e.app.Update(key(tea.KeyCtrlO))
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	req := e.bridge.WaitForRequest()()
	e.app.Update(req)
	require.True(t, e.app.picker.Active)
	assert.True(t, e.app.picker.TextOnly)

	e.app.Update(loadDirCmd(e.fs, "/home", true, false)())
	return done
}

func TestAppOpenFileThroughPicker(t *testing.T) {
	env := newTestEnv(t, share.None{})
	done := env.startOpen(t)

	assert.Equal(t, []string{"docs", "notes.txt"}, names(env.app.picker.Filtered))

	env.app.Update(key(tea.KeyDown))
	env.app.Update(key(tea.KeyEnter))
	assert.False(t, env.app.picker.Active)

	env.app.Update(<-done)

	assert.Equal(t, editor.State{Content: "hello", FileName: "notes.txt"}, env.app.State())
	require.True(t, env.app.alert.Active())
	assert.Equal(t, editor.Alert{Title: "Success", Message: "Loaded notes.txt"}, env.app.alert.Current())
	assert.Contains(t, env.app.View(), "notes.txt")

	env.app.Update(key(tea.KeyEnter))
	assert.False(t, env.app.alert.Active())
	assert.Contains(t, env.app.View(), "hello")
}

func TestAppOpenCancelled(t *testing.T) {
	env := newTestEnv(t, share.None{})
	require.NoError(t, env.ctrl.New())
	env.app.sync()
	before := env.app.State()

	done := env.startOpen(t)
	env.app.Update(key(tea.KeyEsc))
	env.app.Update(<-done)

	assert.Equal(t, before, env.app.State())
	assert.False(t, env.app.alert.Active())
	assert.False(t, env.app.picker.Active)
}

func TestAppOpenPickerFailure(t *testing.T) {
	env := newTestEnv(t, share.None{})
	env.app.settings.Picker.StartDir = "/missing"

	_, cmd := env.app.Update(key(tea.KeyCtrlO))
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	env.app.Update(env.bridge.WaitForRequest()())
	env.app.Update(loadDirCmd(env.fs, "/missing", true, false)())
	env.app.Update(<-done)

	require.True(t, env.app.alert.Active())
	alert := env.app.alert.Current()
	assert.True(t, alert.IsError())
	assert.Equal(t, "Failed to read file: path does not exist: /missing", alert.Message)
	assert.Equal(t, editor.State{}, env.app.State())
}

func TestAppPickerNavigation(t *testing.T) {
	env := newTestEnv(t, share.None{})
	done := env.startOpen(t)

	env.app.Update(key(tea.KeyEnter)) // into docs/
	msg := loadDirCmd(env.fs, "/home/docs", false, false)()
	env.app.Update(msg)
	assert.Equal(t, "/home/docs", env.app.picker.CurrentPath)
	assert.Empty(t, env.app.picker.Filtered)

	_, cmd := env.app.Update(key(tea.KeyBackspace))
	require.NotNil(t, cmd)
	env.app.Update(cmd())
	assert.Equal(t, "/home", env.app.picker.CurrentPath)

	env.app.Update(runes("note"))
	assert.Equal(t, "note", env.app.picker.FilterPattern)
	assert.Equal(t, []string{"notes.txt"}, names(env.app.picker.Filtered))

	env.app.Update(key(tea.KeyBackspace))
	assert.Equal(t, "not", env.app.picker.FilterPattern)

	env.app.Update(runes("pho"))
	assert.Empty(t, env.app.picker.Filtered)

	for range "notpho" {
		env.app.Update(key(tea.KeyBackspace))
	}
	assert.Equal(t, "", env.app.picker.FilterPattern)
	assert.Equal(t, "/home", env.app.picker.CurrentPath)

	env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, env.app.picker.TextOnly)
	env.app.Update(runes("pho"))
	assert.Equal(t, []string{"photo.png"}, names(env.app.picker.Filtered))

	env.app.Update(key(tea.KeyEsc))
	env.app.Update(<-done)
	assert.Equal(t, editor.State{}, env.app.State())
}

func TestAppNewEditSave(t *testing.T) {
	sheet := &recordingSheet{}
	env := newTestEnv(t, sheet)

	env.app.Update(key(tea.KeyCtrlN))
	assert.Equal(t, editor.State{FileName: "new_file.txt", Editing: true}, env.app.State())
	assert.True(t, env.app.textarea.Focused())

	env.app.Update(runes("hi there"))
	assert.Equal(t, "hi there", env.ctrl.Snapshot().Content)
	assert.Contains(t, env.app.View(), "Save")

	_, cmd := env.app.Update(key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	env.app.Update(cmd())

	raw, err := afero.ReadFile(env.fs, "/data/documents/new_file.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(raw))
	assert.Equal(t, []string{"/data/documents/new_file.txt"}, sheet.shared)
	assert.False(t, env.app.alert.Active())
}

func TestAppSaveWithoutShareSheet(t *testing.T) {
	env := newTestEnv(t, share.None{})

	env.app.Update(key(tea.KeyCtrlN))
	env.app.Update(runes("x"))
	_, cmd := env.app.Update(key(tea.KeyCtrlS))
	env.app.Update(cmd())

	require.True(t, env.app.alert.Active())
	assert.Equal(t, editor.Alert{Title: "Success", Message: "File saved locally"}, env.app.alert.Current())
}

func TestAppSaveWithNothingLoaded(t *testing.T) {
	env := newTestEnv(t, &recordingSheet{})

	_, cmd := env.app.Update(key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	env.app.Update(cmd())

	require.True(t, env.app.alert.Active())
	assert.Equal(t, editor.Alert{Title: "Error", Message: "No file loaded"}, env.app.alert.Current())

	exists, err := afero.DirExists(env.fs, "/data/documents")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAppToggleEdit(t *testing.T) {
	env := newTestEnv(t, share.None{})
	done := env.startOpen(t)
	env.app.Update(key(tea.KeyDown))
	env.app.Update(key(tea.KeyEnter))
	env.app.Update(<-done)
	env.app.Update(key(tea.KeyEnter)) // dismiss alert

	env.app.Update(runes("e"))
	assert.True(t, env.app.State().Editing)
	assert.Equal(t, "hello", env.app.textarea.Value())

	env.app.Update(runes("!"))
	assert.Equal(t, "hello!", env.ctrl.Snapshot().Content)

	env.app.Update(key(tea.KeyEsc))
	assert.Equal(t, editor.State{Content: "hello!", FileName: "notes.txt"}, env.app.State())
	assert.False(t, env.app.textarea.Focused())
}

func TestAppToggleWithoutContent(t *testing.T) {
	env := newTestEnv(t, share.None{})

	_, cmd := env.app.Update(runes("e"))
	require.NotNil(t, cmd)
	env.app.Update(cmd())
	assert.Equal(t, "Open a file or type some text first", env.app.statusMsg)
	assert.Equal(t, editor.State{}, env.app.State())
}

func TestAppStatusMessages(t *testing.T) {
	env := newTestEnv(t, share.None{})

	_, cmd := env.app.Update(StatusMsg("first"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "first", env.app.statusMsg)
	firstID := env.app.statusID

	env.app.Update(StatusMsg("second"))
	env.app.Update(clearStatusMsg{id: firstID})
	assert.Equal(t, "second", env.app.statusMsg)

	env.app.Update(clearStatusMsg{id: env.app.statusID})
	assert.Equal(t, "", env.app.statusMsg)
}

func TestAppViewStates(t *testing.T) {
	env := newTestEnv(t, share.None{})

	view := env.app.View()
	assert.Contains(t, view, "Text Editor")
	assert.Contains(t, view, "to load a .txt file")
	assert.NotContains(t, view, "Save (")

	env.app.Update(key(tea.KeyCtrlN))
	view = env.app.View()
	assert.Contains(t, view, "new_file.txt")
	// No content yet, so neither view toggle nor save is offered
	assert.NotContains(t, view, "View (")
	assert.NotContains(t, view, "Save (")
}

func TestAppQuit(t *testing.T) {
	env := newTestEnv(t, share.None{})

	_, cmd := env.app.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = env.app.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppLoadingBeforeSize(t *testing.T) {
	app := NewApp(Config{Bridge: NewPickerBridge(), Logger: zerolog.Nop()})
	assert.Equal(t, "Loading...", app.View())
}

func names(entries []files.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestAppWrapsViewport(t *testing.T) {
	env := newTestEnv(t, share.None{})
	long := strings.Repeat("word ", 60)
	require.NoError(t, afero.WriteFile(env.fs, "/home/notes.txt", []byte(long), 0644))

	done := env.startOpen(t)
	env.app.Update(key(tea.KeyDown))
	env.app.Update(key(tea.KeyEnter))
	env.app.Update(<-done)

	assert.Equal(t, long, env.app.State().Content)
	assert.Greater(t, env.app.viewport.TotalLineCount(), 1)
}

// openNotes loads /home/notes.txt with content and switches to edit mode
func (e *testEnv) openNotes(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.fs, "/home/notes.txt", []byte(content), 0644))

	done := e.startOpen(t)
	e.app.Update(key(tea.KeyDown))
	e.app.Update(key(tea.KeyEnter))
	e.app.Update(<-done)
	e.app.Update(key(tea.KeyEnter)) // dismiss alert
	require.Equal(t, content, e.app.State().Content)

	e.app.Update(runes("e"))
	require.True(t, e.app.State().Editing)
}

func TestAppEditKeepsTabsAndLineEndings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		keys    []tea.KeyMsg
		want    string
	}{
		{
			name:    "typing at the end",
			content: "a\tb\r\nc",
			keys:    []tea.KeyMsg{key(tea.KeyCtrlE), runes("X")},
			want:    "a\tb\r\ncX",
		},
		{
			name:    "new line follows the file",
			content: "a\r\nb",
			keys:    []tea.KeyMsg{key(tea.KeyEnter), runes("c")},
			want:    "a\r\nb\r\nc",
		},
		{
			name:    "lone carriage return",
			content: "a\rb",
			keys:    []tea.KeyMsg{runes("!")},
			want:    "a\rb!",
		},
		{
			name:    "control bytes survive",
			content: "a\x00b\n",
			keys:    []tea.KeyMsg{runes("z")},
			want:    "a\x00b\nz",
		},
		{
			name:    "deleting a tab",
			content: "a\tb",
			keys: []tea.KeyMsg{
				key(tea.KeyLeft),
				key(tea.KeyBackspace), key(tea.KeyBackspace),
				key(tea.KeyBackspace), key(tea.KeyBackspace),
			},
			want: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, share.None{})
			env.openNotes(t, tt.content)
			assert.Equal(t, tt.content, env.ctrl.Snapshot().Content)

			for _, k := range tt.keys {
				env.app.Update(k)
			}
			assert.Equal(t, tt.want, env.ctrl.Snapshot().Content)

			_, cmd := env.app.Update(key(tea.KeyCtrlS))
			require.NotNil(t, cmd)
			env.app.Update(cmd())
			assert.Equal(t, editor.Alert{Title: "Success", Message: "File saved locally"}, env.app.alert.Current())

			raw, err := afero.ReadFile(env.fs, "/data/documents/notes.txt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(raw))
		})
	}
}

func TestAppViewingShowsEditorText(t *testing.T) {
	env := newTestEnv(t, share.None{})
	env.openNotes(t, "a\tb\r\nc")
	env.app.Update(key(tea.KeyEsc))

	view := env.app.viewport.View()
	assert.Contains(t, view, "a    b")
	assert.NotContains(t, view, "\r")
	assert.NotContains(t, view, "\t")
	assert.Equal(t, "a\tb\r\nc", env.app.State().Content)
}

type blockingSheet struct {
	entered chan struct{}
	release chan struct{}
	shared  []string
}

func (s *blockingSheet) IsAvailable(ctx context.Context) bool { return true }

func (s *blockingSheet) Share(ctx context.Context, location string) error {
	s.shared = append(s.shared, location)
	close(s.entered)
	<-s.release
	return nil
}

func TestAppKeysRejectedWhileSaving(t *testing.T) {
	sheet := &blockingSheet{entered: make(chan struct{}), release: make(chan struct{})}
	env := newTestEnv(t, sheet)

	env.app.Update(key(tea.KeyCtrlN))
	env.app.Update(runes("abc"))

	_, save := env.app.Update(key(tea.KeyCtrlS))
	require.NotNil(t, save)
	done := make(chan tea.Msg, 1)
	go func() { done <- save() }()
	<-sheet.entered
	require.True(t, env.ctrl.Busy())

	_, cmd := env.app.Update(runes("d"))
	require.NotNil(t, cmd)
	env.app.Update(cmd())
	assert.Equal(t, "Another action is still running", env.app.statusMsg)
	assert.Equal(t, "abc", env.app.textarea.Value())

	_, cmd = env.app.Update(key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	env.app.Update(cmd())
	assert.Equal(t, "Another action is still running", env.app.statusMsg)

	close(sheet.release)
	env.app.Update(<-done)
	assert.Equal(t, "abc", env.app.textarea.Value())
	assert.Equal(t, editor.State{Content: "abc", FileName: "new_file.txt", Editing: true}, env.app.State())
	assert.Equal(t, []string{"/data/documents/new_file.txt"}, sheet.shared)

	env.app.Update(runes("d"))
	assert.Equal(t, "abcd", env.ctrl.Snapshot().Content)
	assert.Equal(t, "abcd", env.app.textarea.Value())
}
