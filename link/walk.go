package link

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxNotes bounds a walk so a densely linked store cannot run away.
const DefaultMaxNotes = 100

// Locator maps a note id to a location the Fetcher can load.
type Locator func(id string) string

// DirLocator resolves ids to <dir>/<id>.html.
func DirLocator(dir string) Locator {
	return func(id string) string {
		return filepath.Join(dir, id+".html")
	}
}

// Graph is the set of notes reachable from a root note.
type Graph struct {
	// Notes lists reachable note ids in BFS order, root first.
	Notes []string `json:"notes"`
	// Links maps each loaded note to the internal links found in it.
	Links map[string][]core.InternalLink `json:"links"`
	// Missing lists linked notes that could not be loaded.
	Missing []string `json:"missing,omitempty"`
}

// WalkOptions bounds a walk.
type WalkOptions struct {
	MaxNotes int // 0 means DefaultMaxNotes
	MaxDepth int // 0 means unlimited
}

// Walk follows nn://note links breadth-first starting at rootID.
// Failing to load the root is an error; failing to load a linked note
// records it in Missing and the walk continues.
func Walk(ctx context.Context, rootID string, fetcher core.Fetcher, locate Locator, opts WalkOptions) (*Graph, error) {
	maxNotes := opts.MaxNotes
	if maxNotes <= 0 {
		maxNotes = DefaultMaxNotes
	}

	root, err := fetcher.Fetch(ctx, locate(rootID))
	if err != nil {
		return nil, fmt.Errorf("loading root note %s: %w", rootID, err)
	}

	g := &Graph{Links: make(map[string][]core.InternalLink)}
	queue := NewQueue()
	queue.Add(rootID, 0)

	for queue.HasNext() && len(g.Notes) < maxNotes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, depth := queue.Next()

		markup := root.HTML
		if id != rootID {
			result, err := fetcher.Fetch(ctx, locate(id))
			if err != nil {
				g.Missing = append(g.Missing, id)
				continue // Skip broken links, don't block the walk.
			}
			markup = result.HTML
		}
		g.Notes = append(g.Notes, id)

		links, err := ExtractLinks(markup)
		if err != nil {
			continue
		}
		g.Links[id] = links

		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			continue
		}
		for _, l := range links {
			if l.Type == TypeNote {
				queue.Add(l.ID, depth+1)
			}
		}
	}

	return g, nil
}

// ExtractLinks returns the internal links of every <a href> in document order.
func ExtractLinks(markup string) ([]core.InternalLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var links []core.InternalLink
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || !IsInternal(href) {
			return
		}
		if l, ok := Parse(href); ok {
			links = append(links, l)
		}
	})
	return links, nil
}
