package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	tabWidth = 4
	// controlMark stands in for bytes the textarea would drop
	controlMark = '·'
)

// editBuffer maps the text the textarea shows back to the file content.
// The textarea expands tabs, turns CR and CRLF into LF and drops other
// control characters, so each display rune keeps the original bytes it
// stands for. Joining the pieces gives the content.
type editBuffer struct {
	display []rune
	pieces  []string
	newline string
}

func newEditBuffer(content string) *editBuffer {
	b := &editBuffer{newline: "\n"}
	if strings.Contains(content, "\r\n") {
		b.newline = "\r\n"
	}

	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		switch {
		case r == '\r' && strings.HasPrefix(content[i:], "\r\n"):
			b.push('\n', "\r\n")
			size = 2
		case r == '\r' || r == '\n':
			b.push('\n', content[i:i+size])
		case r == '\t':
			b.push(' ', "\t")
			for n := 1; n < tabWidth; n++ {
				b.push(' ', "")
			}
		case r == utf8.RuneError || unicode.IsControl(r):
			b.push(controlMark, content[i:i+size])
		default:
			b.push(r, content[i:i+size])
		}
		i += size
	}
	return b
}

func (b *editBuffer) push(r rune, piece string) {
	b.display = append(b.display, r)
	b.pieces = append(b.pieces, piece)
}

// Display is the text to put in the textarea
func (b *editBuffer) Display() string {
	return string(b.display)
}

// Content is the file content the display stands for
func (b *editBuffer) Content() string {
	return strings.Join(b.pieces, "")
}

// apply returns the buffer after the textarea changed its text to value.
// Only the runes that differ take new pieces; a change that lands inside an
// expanded tab replaces the whole tab with the spaces left on screen.
func (b *editBuffer) apply(value string) *editBuffer {
	next := []rune(value)
	old := b.display

	start := 0
	for start < len(old) && start < len(next) && old[start] == next[start] {
		start++
	}
	tail := 0
	for tail < len(old)-start && tail < len(next)-start &&
		old[len(old)-1-tail] == next[len(next)-1-tail] {
		tail++
	}

	oldEnd := len(old) - tail
	for start > 0 && start < len(b.pieces) && b.pieces[start] == "" {
		start--
	}
	for oldEnd < len(b.pieces) && b.pieces[oldEnd] == "" {
		oldEnd++
	}
	newEnd := len(next) - (len(old) - oldEnd)

	out := &editBuffer{
		display: next,
		pieces:  make([]string, 0, len(next)),
		newline: b.newline,
	}
	out.pieces = append(out.pieces, b.pieces[:start]...)
	for _, r := range next[start:newEnd] {
		if r == '\n' {
			out.pieces = append(out.pieces, b.newline)
		} else {
			out.pieces = append(out.pieces, string(r))
		}
	}
	out.pieces = append(out.pieces, b.pieces[oldEnd:]...)
	return out
}

// displayText renders content the way the editor shows it
func displayText(content string) string {
	return newEditBuffer(content).Display()
}
