package files

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Entry is a file or directory shown by the picker
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime string
}

// LoadDirectory lists path, directories first, then alphabetically
func LoadDirectory(afs afero.Fs, path string) ([]Entry, error) {
	if err := ValidateDirectoryPath(afs, path); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(afs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Name:    info.Name(),
			Path:    filepath.Join(path, info.Name()),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime().Format("2006-01-02 15:04"),
		})
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries sorts directories first, then case-insensitively by name
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

// FilterEntries drops hidden entries unless showHidden, non-text files when
// textOnly, and names not containing pattern (case-insensitive)
func FilterEntries(entries []Entry, pattern string, showHidden, textOnly bool) []Entry {
	filtered := []Entry{}
	lowerPattern := strings.ToLower(pattern)

	for _, entry := range entries {
		if !showHidden && strings.HasPrefix(entry.Name, ".") {
			continue
		}
		if textOnly && !entry.IsDir && !IsTextFile(entry.Name) {
			continue
		}
		if pattern != "" && !strings.Contains(strings.ToLower(entry.Name), lowerPattern) {
			continue
		}
		filtered = append(filtered, entry)
	}

	return filtered
}

// ValidateDirectoryPath checks that path exists and is a directory
func ValidateDirectoryPath(afs afero.Fs, path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	info, err := afs.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ParentDirectory returns the parent of path, or "" at the root
func ParentDirectory(path string) string {
	parent := filepath.Dir(path)
	if parent == path {
		return ""
	}
	return parent
}

// FileExtension returns the lower-cased extension of path. Dotfiles such as
// .gitignore have none.
func FileExtension(path string) string {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && !strings.Contains(base[1:], ".") {
		return ""
	}
	return strings.ToLower(filepath.Ext(path))
}

var textExtensions = map[string]bool{
	".txt": true, ".text": true, ".md": true, ".markdown": true, ".log": true,
	".csv": true, ".tsv": true, ".yaml": true, ".yml": true, ".json": true,
	".toml": true, ".ini": true, ".conf": true, ".cfg": true, ".env": true,
	".xml": true, ".html": true, ".css": true, ".go": true, ".py": true,
	".js": true, ".ts": true, ".sh": true, ".rst": true,
}

var textFileNames = map[string]bool{
	"README": true, "LICENSE": true, "CHANGELOG": true, "Makefile": true,
	"Dockerfile": true, "Procfile": true, ".gitignore": true, ".editorconfig": true,
}

// IsTextFile reports whether a file name looks like plain text. It stands in
// for a text/plain MIME filter.
func IsTextFile(name string) bool {
	if textExtensions[FileExtension(name)] {
		return true
	}
	return textFileNames[filepath.Base(name)]
}

// FormatFileSize formats a size in human-readable form
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
