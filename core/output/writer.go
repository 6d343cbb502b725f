// Package output handles file naming and writing for rendered notes.
// A single note is written as <name>.<ext>, where name comes from the note's
// file name or URL. Notes reached by following links are written under a
// directory named after the note they were reached from.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteNote writes the output for the note loaded from location.
func (w *Writer) WriteNote(location string, data []byte, ext string) (string, error) {
	return w.write(filepath.Join(w.OutputDir, NameFor(location)+ext), data)
}

// WriteLinked writes the output for a note reached from root by its id.
// Example: root "notes/index.html", id "abc" → <dir>/index/abc.md
func (w *Writer) WriteLinked(root, id string, data []byte, ext string) (string, error) {
	return w.write(filepath.Join(w.OutputDir, NameFor(root), sanitize(id)+ext), data)
}

// WriteRaw writes data verbatim under name, creating parent directories.
func (w *Writer) WriteRaw(name string, data []byte) (string, error) {
	return w.write(filepath.Join(w.OutputDir, name), data)
}

func (w *Writer) write(fullPath string, data []byte) (string, error) {
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// NameFor derives a flat file name from a note path or URL, without the
// extension.
// Example: notes/Shopping List.html → Shopping_List
// Example: https://example.com/n/abc.html → abc
func NameFor(location string) string {
	base := filepath.Base(location)
	if parsed, err := url.Parse(location); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		base = path.Base(strings.TrimSuffix(parsed.Path, "/"))
		if base == "." || base == "/" {
			return sanitize(parsed.Host)
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if name := sanitize(base); name != "" {
		return name
	}
	return "note"
}

// sanitize replaces non-alphanumeric characters with underscores, keeping
// dashes.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
