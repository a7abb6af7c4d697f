// Package share hands saved files to other applications.
package share

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/models"
	"github.com/spf13/afero"
)

// ErrUnavailable is returned by Share when the sheet cannot be used here
var ErrUnavailable = errors.New("sharing is not available")

var (
	_ editor.ShareSheet = (*Clipboard)(nil)
	_ editor.ShareSheet = (*Opener)(nil)
	_ editor.ShareSheet = None{}
)

// New returns the share sheet for a settings method name
func New(method string, afs afero.Fs) (editor.ShareSheet, error) {
	switch method {
	case models.ShareClipboard, "":
		return NewClipboard(afs), nil
	case models.ShareOpen:
		return NewOpener(), nil
	case models.ShareNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("invalid share method: %s (must be: clipboard, open, or none)", method)
	}
}

// Clipboard shares a file by copying its text to the system clipboard
type Clipboard struct {
	fs afero.Fs
	// write and unsupported are swapped out in tests
	write       func(string) error
	unsupported func() bool
}

// NewClipboard creates a clipboard share sheet reading files from afs
func NewClipboard(afs afero.Fs) *Clipboard {
	return &Clipboard{
		fs:          afs,
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// IsAvailable reports whether a clipboard utility was found
func (c *Clipboard) IsAvailable(ctx context.Context) bool {
	return !c.unsupported()
}

// Share copies the file at location to the clipboard
func (c *Clipboard) Share(ctx context.Context, location string) error {
	if c.unsupported() {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := afero.ReadFile(c.fs, location)
	if err != nil {
		return fmt.Errorf("failed to read %s for sharing: %w", location, err)
	}

	if err := c.write(string(content)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Opener shares a file by handing it to the desktop's default application
type Opener struct {
	goos     string
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewOpener creates a share sheet for the running platform
func NewOpener() *Opener {
	return &Opener{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return startDetached(exec.Command(name, args...), nil)
		},
	}
}

// startDetached starts cmd and reaps it in the background. The exit error,
// if any, is sent on done when done is not nil.
func startDetached(cmd *exec.Cmd, done chan<- error) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		err := cmd.Wait()
		if done != nil {
			done <- err
		}
	}()
	return nil
}

// launcher returns the command and leading arguments used to open a file
func (o *Opener) launcher() (string, []string, bool) {
	switch o.goos {
	case "darwin":
		return "open", nil, true
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", nil, true
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, true
	default:
		return "", nil, false
	}
}

// IsAvailable reports whether the platform launcher is on PATH
func (o *Opener) IsAvailable(ctx context.Context) bool {
	name, _, ok := o.launcher()
	if !ok {
		return false
	}
	_, err := o.lookPath(name)
	return err == nil
}

// Share starts the launcher for location without waiting for it
func (o *Opener) Share(ctx context.Context, location string) error {
	name, args, ok := o.launcher()
	if !ok {
		return fmt.Errorf("%w: unsupported platform %s", ErrUnavailable, o.goos)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := o.start(name, append(args, location)...); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// None never shares
type None struct{}

func (None) IsAvailable(ctx context.Context) bool { return false }

func (None) Share(ctx context.Context, location string) error { return ErrUnavailable }
