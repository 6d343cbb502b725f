// Package core defines the shared types and stage interfaces for notepipe.
// Each stage of the transcoder is a clean, testable interface.
package core

import (
	"context"
	"net/url"
	"sort"
	"strings"
)

// Attribute names used by stored note markup.
const (
	AttrHash     = "data-hash"
	AttrMime     = "data-mime"
	AttrFilename = "data-filename"
	AttrSrc      = "src"
	AttrHref     = "href"
	AttrBlockID  = "data-block-id"
	AttrSpacing  = "data-spacing"
)

// InternalLinkScheme prefixes links that point at another note in the same store.
const InternalLinkScheme = "nn://"

// FetchResult holds the raw markup of a note and where it came from.
type FetchResult struct {
	Location   string
	StatusCode int
	HTML       string
}

// NoteMetadata holds metadata about the note being rendered.
type NoteMetadata struct {
	Source   string `json:"source"`
	Title    string `json:"title"`
	LoadedAt string `json:"loaded_at"` // ISO8601
}

// ContentBlock is a markup subtree tagged with a block id, flattened to text.
type ContentBlock struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// InternalLink is a parsed nn:// reference to another note.
type InternalLink struct {
	Type   string            `json:"type"`
	ID     string            `json:"id"`
	Params map[string]string `json:"params,omitempty"`
}

// String renders the link back into its nn:// form. Params are sorted by key.
func (l InternalLink) String() string {
	var b strings.Builder
	b.WriteString(InternalLinkScheme)
	b.WriteString(l.Type)
	b.WriteString("/")
	b.WriteString(l.ID)
	if len(l.Params) == 0 {
		return b.String()
	}
	keys := make([]string, 0, len(l.Params))
	for k := range l.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i == 0 {
			b.WriteString("?")
		} else {
			b.WriteString("&")
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(l.Params[k]))
	}
	return b.String()
}

// PostProcessResult is the outcome of externalizing a note's attachments.
type PostProcessResult struct {
	Data          string         `json:"data"`
	Hashes        []string       `json:"hashes"`
	InternalLinks []InternalLink `json:"internal_links"`
}

// NoteJSON is the complete JSON report for a single note.
type NoteJSON struct {
	Metadata NoteMetadata   `json:"metadata"`
	Headline string         `json:"headline"`
	Text     string         `json:"text"`
	Markdown string         `json:"markdown"`
	Blocks   []ContentBlock `json:"blocks"`
	Hashes   []string       `json:"hashes"`
	Links    []InternalLink `json:"internal_links"`
}

// Fetcher retrieves raw note markup from a path or URL.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*FetchResult, error)
}

// Flattener converts note markup into wrapped plain text.
type Flattener interface {
	Flatten(html string) string
}

// Normalizer converts note markup into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// MediaResolver maps attachment hashes to URLs that can be placed in src.
// Hashes without a resolution are left out of the returned map.
type MediaResolver interface {
	Resolve(ctx context.Context, hashes []string) (map[string]string, error)
}

// AttachmentSaver persists an attachment and returns its hash.
// An empty hash means the attachment was not stored.
type AttachmentSaver interface {
	Save(ctx context.Context, data []byte, mime, filename string) (string, error)
}

// ResolverFunc adapts a function to MediaResolver.
type ResolverFunc func(ctx context.Context, hashes []string) (map[string]string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, hashes []string) (map[string]string, error) {
	return f(ctx, hashes)
}

// SaverFunc adapts a function to AttachmentSaver.
type SaverFunc func(ctx context.Context, data []byte, mime, filename string) (string, error)

// Save calls f.
func (f SaverFunc) Save(ctx context.Context, data []byte, mime, filename string) (string, error) {
	return f(ctx, data, mime, filename)
}

// Renderer converts a transcoded note into a final output format.
type Renderer interface {
	Render(note Note, meta NoteMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// Note is the read side of a transcoded document, as consumed by renderers.
type Note interface {
	HTML() string
	PlainText() string
	Markdown() (string, error)
	Headline() string
	ExtractBlocks() ([]ContentBlock, error)
	Hashes() []string
	InternalLinks() []InternalLink
}
