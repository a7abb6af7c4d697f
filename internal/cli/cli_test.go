package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilePath(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, "/home/a.txt", []byte("a"), 0644))

	assert.NoError(t, ValidateFilePath(afs, "/home/a.txt"))
	assert.EqualError(t, ValidateFilePath(afs, "/home/b.txt"), "path does not exist: /home/b.txt")
	assert.EqualError(t, ValidateFilePath(afs, "/home"), "path is a directory, expected file: /home")
}

func TestValidateDocumentName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr string
	}{
		{"notes.txt", ""},
		{"", "document name cannot be empty"},
		{"a/b.txt", "document name contains invalid character: /"},
		{`a\b.txt`, `document name contains invalid character: \`},
		{"..", "document name cannot be .."},
		{".", "document name cannot be ."},
		{"../notes.txt", "document name contains invalid character: /"},
		{"a..b.txt", ""},
		{"notes..txt", ""},
		{"~notes", ""},
		{"$HOME.txt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentName(tt.name)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestTruncateAndPreview(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcdefg...", TruncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "héllo wo...", TruncateString("héllo world!", 11))

	assert.Equal(t, "first line ...", Preview("first line\nsecond", 80))
	assert.Equal(t, "single", Preview("single", 80))
}

func TestPrintHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)
	defer SetGlobalFlags(false, false)

	PrintSuccess("saved %s", "a.txt")
	PrintError("failed")
	assert.Equal(t, "✓ saved a.txt\n", out.String())
	assert.Equal(t, "✗ failed\n", errOut.String())

	out.Reset()
	SetGlobalFlags(true, true)
	PrintInfo("hidden")
	PrintWarning("careful")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "WARNING: careful")
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := NewLogger("", false)
	require.NoError(t, err)
	assert.Nil(t, closer)
	logger.Info().Msg("dropped")

	path := filepath.Join(t.TempDir(), "textpad.log")
	logger, closer, err = NewLogger(path, false)
	require.NoError(t, err)
	logger.Info().Str("file", "a.txt").Msg("saved")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"file":"a.txt"`)
	assert.Contains(t, string(raw), `"message":"saved"`)

	_, _, err = NewLogger(filepath.Join(t.TempDir(), "missing", "x.log"), false)
	assert.Error(t, err)
}

func TestNewCommandContext(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TEXTPAD_HOME", home)

	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, filepath.Join(home, "settings.yaml"),
		[]byte("share:\n  method: open\nui:\n  wrap: false\n"), 0644))

	cctx, err := NewCommandContext(afs, &Options{})
	require.NoError(t, err)
	assert.Equal(t, "open", cctx.Settings.Share.Method)
	assert.False(t, cctx.Settings.UI.Wrap)
	assert.Equal(t, filepath.Join(home, "documents"), cctx.DocsDir)
	assert.Equal(t, filepath.Join(home, "documents", "a.txt"), cctx.Store.DocumentPath("a.txt"))
	require.NoError(t, cctx.Close())

	cctx, err = NewCommandContext(afs, &Options{Share: "none", DocsDir: "/srv/docs"})
	require.NoError(t, err)
	assert.Equal(t, "none", cctx.Settings.Share.Method)
	assert.Equal(t, "/srv/docs", cctx.DocsDir)

	sheet, err := cctx.ShareSheet()
	require.NoError(t, err)
	assert.False(t, sheet.IsAvailable(context.Background()))

	require.NoError(t, afero.WriteFile(afs, "/srv/docs/b.txt", []byte("b"), 0644))
	path, err := cctx.ResolveDocument("b.txt")
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs/b.txt", path)

	path, err = cctx.ResolveFile("/srv/docs/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs/b.txt", path)

	_, err = cctx.ResolveDocument("c.txt")
	assert.EqualError(t, err, "document 'c.txt' not found in /srv/docs")
}

func TestNewCommandContextMalformedSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TEXTPAD_HOME", home)

	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, filepath.Join(home, "settings.yaml"), []byte("share: [\n"), 0644))

	_, err := NewCommandContext(afs, nil)
	assert.ErrorContains(t, err, "failed to parse settings YAML")
}
