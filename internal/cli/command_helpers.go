package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/files"
	"github.com/pluqqy/textpad/pkg/models"
	"github.com/pluqqy/textpad/pkg/share"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options holds the global command line flags
type Options struct {
	LogOutputFile string
	LogPretty     bool
	DocsDir       string
	Share         string
	Quiet         bool
	NoColor       bool
}

// CommandContext holds what every command needs: settings with flag
// overrides applied, the filesystem, the store and a logger
type CommandContext struct {
	Fs           afero.Fs
	Settings     *models.Settings
	SettingsPath string
	DocsDir      string
	Store        *files.Store
	Logger       zerolog.Logger

	logCloser io.Closer
}

// NewCommandContext loads settings and applies the flags in opts
func NewCommandContext(afs afero.Fs, opts *Options) (*CommandContext, error) {
	if opts == nil {
		opts = &Options{}
	}

	settingsPath, err := files.SettingsPath()
	if err != nil {
		return nil, err
	}

	settings, err := files.ReadSettingsFrom(afs, settingsPath)
	if err != nil {
		return nil, err
	}
	if opts.DocsDir != "" {
		settings.Documents.Dir = opts.DocsDir
	}
	if opts.Share != "" {
		settings.Share.Method = opts.Share
	}

	docsDir, err := files.ResolveDocumentsDir(settings)
	if err != nil {
		return nil, err
	}

	logger, closer, err := NewLogger(opts.LogOutputFile, opts.LogPretty)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Fs:           afs,
		Settings:     settings,
		SettingsPath: settingsPath,
		DocsDir:      docsDir,
		Store:        files.NewStore(afs, docsDir),
		Logger:       logger,
		logCloser:    closer,
	}, nil
}

// ShareSheet returns the share sheet selected by the settings
func (c *CommandContext) ShareSheet() (editor.ShareSheet, error) {
	return share.New(c.Settings.Share.Method, c.Fs)
}

// ResolveFile finds arg as a path, falling back to a document of that name
func (c *CommandContext) ResolveFile(arg string) (string, error) {
	path, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", arg, err)
	}
	if ValidateFilePath(c.Fs, path) == nil {
		return path, nil
	}

	return c.ResolveDocument(arg)
}

// ResolveDocument finds a document saved in the documents directory
func (c *CommandContext) ResolveDocument(name string) (string, error) {
	if err := ValidateDocumentName(name); err != nil {
		return "", err
	}
	path := c.Store.DocumentPath(name)
	if err := ValidateFilePath(c.Fs, path); err != nil {
		return "", fmt.Errorf("document '%s' not found in %s", name, c.DocsDir)
	}
	return path, nil
}

// Close releases the log file
func (c *CommandContext) Close() error {
	if c.logCloser == nil {
		return nil
	}
	return c.logCloser.Close()
}

// NewLogger returns a logger writing to path. Without a path logs are
// dropped, since the TUI owns the terminal.
func NewLogger(path string, pretty bool) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), nil, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("could not open file '%s' for logging: %w", path, err)
	}

	var w io.Writer = file
	if pretty {
		w = zerolog.ConsoleWriter{Out: file, NoColor: true}
	}

	return zerolog.New(w).With().Timestamp().Caller().Logger(), file, nil
}
