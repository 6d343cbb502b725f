// Package wrap builds word-wrapped lines for plain text output.
// Widths are measured in terminal display cells, so wide glyphs such as
// emoji and CJK take two columns.
package wrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Builder accumulates words into lines no wider than Width columns.
// A word wider than the limit gets a line of its own instead of being split.
type Builder struct {
	limit    int // 0 or less disables wrapping
	lines    []string
	cur      strings.Builder
	curWidth int
	space    bool // a space is pending before the next word
	words    int
}

// New creates a Builder wrapping at limit columns.
func New(limit int) *Builder {
	return &Builder{limit: limit}
}

// Limit returns the wrap column.
func (b *Builder) Limit() int {
	return b.limit
}

// Space records a collapsible space before the next word.
func (b *Builder) Space() {
	if b.curWidth > 0 {
		b.space = true
	}
}

// Word appends w, starting a new line if it would not fit.
func (b *Builder) Word(w string) {
	if w == "" {
		return
	}
	ww := Width(w)
	if b.curWidth > 0 && b.space {
		if b.limit > 0 && b.curWidth+1+ww > b.limit {
			b.Break()
		} else {
			b.cur.WriteByte(' ')
			b.curWidth++
		}
	}
	b.cur.WriteString(w)
	b.curWidth += ww
	b.space = false
	b.words++
}

// Break ends the current line, even if it is empty.
func (b *Builder) Break() {
	b.lines = append(b.lines, b.cur.String())
	b.cur.Reset()
	b.curWidth = 0
	b.space = false
}

// Text feeds s into the builder. Runs of whitespace collapse into one space;
// newlines end the line when preserveNewlines is set and something has
// already been written.
func (b *Builder) Text(s string, preserveNewlines bool) {
	start := -1
	for i, r := range s {
		if !isSpace(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.Word(s[start:i])
			start = -1
		}
		if r == '\n' && preserveNewlines {
			if !b.Empty() {
				b.Break()
			}
			continue
		}
		b.Space()
	}
	if start >= 0 {
		b.Word(s[start:])
	}
}

// Empty reports whether no word has been written yet.
func (b *Builder) Empty() bool {
	return b.words == 0
}

// Reset discards everything written so far.
func (b *Builder) Reset() {
	b.lines = b.lines[:0]
	b.cur.Reset()
	b.curWidth = 0
	b.space = false
	b.words = 0
}

// String returns the wrapped text. Trailing spaces and trailing empty lines
// are dropped.
func (b *Builder) String() string {
	if b.Empty() {
		return ""
	}
	lines := make([]string, 0, len(b.lines)+1)
	for _, l := range b.lines {
		lines = append(lines, strings.TrimRight(l, " "))
	}
	lines = append(lines, strings.TrimRight(b.cur.String(), " "))
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// isSpace matches HTML whitespace only; a non-breaking space is kept.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// Wrap re-flows text to limit columns, keeping existing line breaks.
func Wrap(text string, limit int) string {
	out := make([]string, 0, strings.Count(text, "\n")+1)
	for _, line := range strings.Split(text, "\n") {
		b := New(limit)
		b.Text(line, false)
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}
