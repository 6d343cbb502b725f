// Package render provides output renderers for transcoded notes.
// This file implements the Markdown and plain text renderers, which write
// one of the note's derived views as-is.
package render

import (
	"fmt"
	"strings"

	"github.com/LaffeyOvO/notesnook/core"
)

// MarkdownRenderer writes the note's Markdown view.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the note as Markdown. A note without a heading of its own
// gets the metadata title as a level one heading.
func (r *MarkdownRenderer) Render(note core.Note, meta core.NoteMetadata) ([]byte, error) {
	md, err := note.Markdown()
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}
	if meta.Title != "" && !strings.HasPrefix(md, "# ") {
		md = "# " + meta.Title + "\n\n" + md
	}
	return terminate(md), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// TextRenderer writes the note's plain text view.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the flattened text.
func (r *TextRenderer) Render(note core.Note, _ core.NoteMetadata) ([]byte, error) {
	return terminate(note.PlainText()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// terminate ends non-empty output with a single newline.
func terminate(s string) []byte {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return []byte(s + "\n")
}
