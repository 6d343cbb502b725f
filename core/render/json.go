// Package render: JSON renderer.
// Builds a structured report of every derived view of a note.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/LaffeyOvO/notesnook/core"
)

// JSONRenderer produces a NoteJSON report.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render collects the note's views into a single JSON document.
func (r *JSONRenderer) Render(note core.Note, meta core.NoteMetadata) ([]byte, error) {
	markdown, err := note.Markdown()
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}
	blocks, err := note.ExtractBlocks()
	if err != nil {
		return nil, fmt.Errorf("extracting blocks: %w", err)
	}

	report := core.NoteJSON{
		Metadata: meta,
		Headline: note.Headline(),
		Text:     note.PlainText(),
		Markdown: markdown,
		Blocks:   blocks,
		Hashes:   note.Hashes(),
		Links:    note.InternalLinks(),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
