package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(afs afero.Fs, path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := afs.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateDocumentName validates the name of a saved document. Any name the
// documents directory can hold directly is accepted.
func ValidateDocumentName(name string) error {
	switch name {
	case "":
		return fmt.Errorf("document name cannot be empty")
	case ".", "..":
		return fmt.Errorf("document name cannot be %s", name)
	}

	for _, char := range []string{"/", "\\"} {
		if strings.Contains(name, char) {
			return fmt.Errorf("document name contains invalid character: %s", char)
		}
	}

	return nil
}
