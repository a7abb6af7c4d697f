package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	return osFromGOOS(runtime.GOOS)
}

func osFromGOOS(goos string) OSType {
	switch goos {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	return s.forOS(GetOS())
}

func (s ShortcutKey) forOS(os OSType) string {
	switch os {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Matches reports whether a key string triggers this shortcut. The Default
// binding is always accepted alongside the OS-specific one.
func (s ShortcutKey) Matches(key string) bool {
	return key == s.Get() || key == s.Default
}

// Shortcuts holds every key binding of the editor screen
var Shortcuts = struct {
	Open       ShortcutKey
	New        ShortcutKey
	Edit       ShortcutKey
	View       ShortcutKey
	Save       ShortcutKey
	Quit       ShortcutKey
	Dismiss    ShortcutKey
	Hidden     ShortcutKey
	TextFilter ShortcutKey
}{
	Open: ShortcutKey{
		Default: "ctrl+o",
	},
	New: ShortcutKey{
		Default: "ctrl+n",
	},
	Edit: ShortcutKey{
		Default: "e",
	},
	View: ShortcutKey{
		Default: "esc",
	},
	Save: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // Avoid Ctrl+S terminal conflict (XOFF)
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
	Dismiss: ShortcutKey{
		Default: "enter",
	},
	Hidden: ShortcutKey{
		Default: "tab",
	},
	TextFilter: ShortcutKey{
		Mac:     "ctrl+t",
		Linux:   "alt+t", // Avoid readline transpose
		Windows: "alt+t",
		Default: "ctrl+t",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	return formatShortcut(key.Get(), GetOS())
}

func formatShortcut(shortcut string, os OSType) string {
	// M- is the usual terminal notation for Alt outside macOS
	if os == OSLinux || os == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	return shortcut
}

// GetTerminalSetupMessage returns OS-specific terminal setup instructions
func GetTerminalSetupMessage() string {
	switch GetOS() {
	case OSLinux:
		return "TIP: Run 'stty -ixon' to enable Ctrl+S in your terminal"
	case OSWindows:
		return "TIP: For best experience, use Windows Terminal or PowerShell"
	default:
		return ""
	}
}
