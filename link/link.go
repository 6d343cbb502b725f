// Package link handles nn:// internal links between notes.
// It parses and builds link URIs and walks the graph of linked notes.
package link

import (
	"net/url"
	"strings"

	"github.com/LaffeyOvO/notesnook/core"
)

// TypeNote links to another note, optionally to one of its blocks.
const TypeNote = "note"

// ParamBlockID selects a block inside the linked note.
const ParamBlockID = "blockId"

// validTypes are the link types the store knows how to follow.
var validTypes = map[string]bool{
	TypeNote: true,
}

// IsInternal reports whether href uses the internal link scheme.
func IsInternal(href string) bool {
	return strings.HasPrefix(href, core.InternalLinkScheme)
}

// Parse parses an nn://type/id?params link. It returns false for anything
// that is not a well-formed internal link of a known type.
func Parse(href string) (core.InternalLink, bool) {
	if !IsInternal(href) {
		return core.InternalLink{}, false
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return core.InternalLink{}, false
	}

	linkType := parsed.Host
	id, _, _ := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
	if linkType == "" || id == "" || !validTypes[linkType] {
		return core.InternalLink{}, false
	}

	l := core.InternalLink{Type: linkType, ID: id}
	query := parsed.Query()
	if len(query) > 0 {
		l.Params = make(map[string]string, len(query))
		for k, v := range query {
			l.Params[k] = v[0]
		}
	}
	return l, true
}

// Create builds an internal link URI.
func Create(linkType, id string, params map[string]string) string {
	return core.InternalLink{Type: linkType, ID: id, Params: params}.String()
}

// NoteLink builds a link to a note, or to a block in it when blockID is set.
func NoteLink(id, blockID string) string {
	if blockID == "" {
		return Create(TypeNote, id, nil)
	}
	return Create(TypeNote, id, map[string]string{ParamBlockID: blockID})
}
