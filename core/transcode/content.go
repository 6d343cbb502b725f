// Package transcode is the facade over the markup, flatten, normalize and
// extract stages. A Content wraps one stored note body and derives every
// view and rewrite the rest of the application needs from it. The body is
// never modified in place; rewrites return new markup.
package transcode

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/extract"
	"github.com/LaffeyOvO/notesnook/core/flatten"
	"github.com/LaffeyOvO/notesnook/core/markup"
	"github.com/LaffeyOvO/notesnook/core/normalize"
	"github.com/LaffeyOvO/notesnook/link"
)

var _ core.Note = (*Content)(nil)

// The default stages hold no per-document state and are shared.
var (
	defaultFlattener  = flatten.New()
	defaultNormalizer = normalize.New()
)

// Content is a note body plus the stages used to transcode it.
type Content struct {
	data       string
	flattener  core.Flattener
	normalizer core.Normalizer
	logger     *slog.Logger

	textOnce sync.Once
	text     string
}

// Option configures a Content.
type Option func(*Content)

// WithLogger sets the logger used for per-attachment failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Content) {
		c.logger = l
	}
}

// WithFlattener replaces the plain text stage.
func WithFlattener(f core.Flattener) Option {
	return func(c *Content) {
		c.flattener = f
	}
}

// WithNormalizer replaces the Markdown stage.
func WithNormalizer(n core.Normalizer) Option {
	return func(c *Content) {
		c.normalizer = n
	}
}

// New wraps a stored note body.
func New(data string, opts ...Option) *Content {
	c := &Content{
		data:       data,
		flattener:  defaultFlattener,
		normalizer: defaultNormalizer,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTML returns the stored markup unchanged.
func (c *Content) HTML() string {
	return c.data
}

// PlainText returns the note flattened to wrapped plain text.
func (c *Content) PlainText() string {
	c.textOnce.Do(func() {
		c.text = c.flattener.Flatten(c.data)
	})
	return c.text
}

// Markdown returns the note as Markdown.
func (c *Content) Markdown() (string, error) {
	return c.normalizer.Normalize(c.data)
}

// Headline returns the first paragraph's text, used as a fallback title.
func (c *Content) Headline() string {
	return extract.New(c.flattener).Headline(c.data)
}

var splitter = regexp.MustCompile(`\W+`)

// Matches reports whether any word of query occurs, case-insensitively,
// anywhere in the note's plain text. Words match as substrings, so "foo bar"
// matches a note containing "foobaz". A query that is empty or starts or
// ends with a separator yields an empty word, which matches every note.
func (c *Content) Matches(query string) bool {
	text := strings.ToLower(c.PlainText())
	for _, token := range splitter.Split(strings.ToLower(query), -1) {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// ExtractBlocks returns every block-tagged element in document order.
func (c *Content) ExtractBlocks() ([]core.ContentBlock, error) {
	return extract.New(c.flattener).Blocks(c.data)
}

// Hashes returns the distinct attachment hashes referenced by media tags,
// in document order.
func (c *Content) Hashes() []string {
	var hashes hashList
	markup.Scan(c.data, func(tag string, attrs *markup.Attributes, _ markup.Position) {
		if isMediaTag(tag) {
			hashes.add(attrs.Get(core.AttrHash))
		}
	})
	return hashes.slice()
}

// InternalLinks returns the parsed nn:// links of every anchor, in
// document order.
func (c *Content) InternalLinks() []core.InternalLink {
	links := []core.InternalLink{}
	if !strings.Contains(c.data, core.InternalLinkScheme) {
		return links
	}
	markup.Scan(c.data, func(tag string, attrs *markup.Attributes, _ markup.Position) {
		if tag != "a" {
			return
		}
		if l, ok := link.Parse(attrs.Get(core.AttrHref)); ok {
			links = append(links, l)
		}
	})
	return links
}

// StripAttachments removes every tag, with its content, whose attachment
// hash is in hashes.
func (c *Content) StripAttachments(hashes []string) string {
	if len(hashes) == 0 {
		return c.data
	}
	drop := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		drop[h] = true
	}
	return markup.Rewrite(c.data, func(_ string, attrs *markup.Attributes, _ markup.Position) markup.Verdict {
		if h := attrs.Get(core.AttrHash); h != "" && drop[h] {
			return markup.Remove
		}
		return markup.Keep
	})
}

func isMediaTag(tag string) bool {
	switch tag {
	case "img", "iframe", "span":
		return true
	}
	return false
}

// hashList collects distinct non-empty hashes in insertion order.
type hashList struct {
	seen  map[string]bool
	items []string
}

func (l *hashList) add(h string) {
	if h == "" || l.seen[h] {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	l.seen[h] = true
	l.items = append(l.items, h)
}

// slice returns the hashes, never nil.
func (l *hashList) slice() []string {
	if l.items == nil {
		return []string{}
	}
	return l.items
}
