package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pluqqy/textpad/pkg/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	AppDir           = "textpad"
	DocumentsDir     = "documents"
	SettingsFile     = "settings.yaml"
	LockFileName     = ".textpad.lock"
	HomeEnv          = "TEXTPAD_HOME"
	UntitledFileName = "untitled.txt"
)

// ConfigDir returns the directory holding settings.yaml.
// TEXTPAD_HOME overrides the per-user config directory.
func ConfigDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Clean(home), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// SettingsPath returns the location of the settings file
func SettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFile), nil
}

// DefaultDocumentsDir returns the private area saved files are written to
func DefaultDocumentsDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(filepath.Clean(home), DocumentsDir), nil
	}
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, AppDir, DocumentsDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppDir, DocumentsDir), nil
}

// ResolveDocumentsDir returns the configured documents dir or the default one
func ResolveDocumentsDir(settings *models.Settings) (string, error) {
	if settings != nil && settings.Documents.Dir != "" {
		return expandHome(settings.Documents.Dir)
	}
	return DefaultDocumentsDir()
}

// InitDocuments creates the documents directory and writes default settings
// if no settings file exists yet
func InitDocuments(afs afero.Fs, settingsPath, docsDir string) error {
	if err := afs.MkdirAll(docsDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", docsDir, err)
	}

	exists, err := afero.Exists(afs, settingsPath)
	if err != nil {
		return fmt.Errorf("failed to check settings %s: %w", settingsPath, err)
	}
	if exists {
		return nil
	}

	return WriteSettingsTo(afs, settingsPath, models.DefaultSettings())
}

// ReadSettings reads the settings file from its default location
func ReadSettings() (*models.Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return ReadSettingsFrom(afero.NewOsFs(), path)
}

// ReadSettingsFrom reads settings from path. A missing file yields the defaults.
// Keys absent from the file keep their default values.
func ReadSettingsFrom(afs afero.Fs, path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := afero.ReadFile(afs, path)
	if err != nil {
		if isNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}

	return settings, nil
}

// WriteSettingsTo writes settings as YAML to path
func WriteSettingsTo(afs afero.Fs, path string, settings *models.Settings) error {
	if err := afs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := afero.WriteFile(afs, path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path == "~" || (len(path) > 1 && path[:2] == "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return filepath.Clean(path), nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
