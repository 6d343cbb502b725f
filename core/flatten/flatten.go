// Package flatten implements the Flattener interface.
// It renders note markup as plain text: 80-column word wrapping, preserved
// newlines, and block rules for paragraphs, lists, checklists, headings,
// quotes and data tables. Output is deterministic for a given input.
package flatten

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultWordWrap is the column at which text is wrapped.
	DefaultWordWrap = 80

	// CheckedGlyph marks a completed checklist item.
	CheckedGlyph = "✅"
	// UncheckedGlyph marks an open checklist item.
	UncheckedGlyph = "☐"

	maxColumnWidth = 60
	colSpacing     = 3
	maxColspan     = 1000
)

// formatFunc renders one element into the walker.
type formatFunc func(w *walker, n *html.Node)

// selectorFormat binds a CSS selector to the formatter used for matches.
type selectorFormat struct {
	sel    cascadia.Selector
	format formatFunc
}

// Flattener converts note markup to plain text.
type Flattener struct {
	width     int
	checked   string
	unchecked string
	selectors []selectorFormat
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithWordWrap sets the wrap column. Zero or less disables wrapping.
func WithWordWrap(width int) Option {
	return func(f *Flattener) {
		f.width = width
	}
}

// WithChecklistGlyphs overrides the checked and unchecked item markers.
func WithChecklistGlyphs(checked, unchecked string) Option {
	return func(f *Flattener) {
		f.checked = checked
		f.unchecked = unchecked
	}
}

// New creates a Flattener with the note rule set.
func New(opts ...Option) *Flattener {
	f := &Flattener{
		width:     DefaultWordWrap,
		checked:   CheckedGlyph,
		unchecked: UncheckedGlyph,
	}
	for _, opt := range opts {
		opt(f)
	}

	// First match wins; elements matching none fall back to tag defaults.
	f.selectors = []selectorFormat{
		{cascadia.MustCompile("table"), formatDataTable},
		{cascadia.MustCompile("ul.checklist"), f.formatTaskList},
		{cascadia.MustCompile("ul.simple-checklist"), f.formatTaskList},
		{cascadia.MustCompile("p"), formatParagraph},
	}
	return f
}

// bodyContext parses fragments as if they were the content of <body>.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// Flatten converts markup into plain text. Unparseable input yields "".
func (f *Flattener) Flatten(markup string) string {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext)
	if err != nil {
		return ""
	}
	return f.FlattenNodes(nodes)
}

// FlattenNodes converts already parsed nodes into plain text.
func (f *Flattener) FlattenNodes(nodes []*html.Node) string {
	w := f.newWalker(f.width)
	for _, n := range nodes {
		w.node(n)
	}
	return w.result()
}

func (f *Flattener) newWalker(width int) *walker {
	return &walker{f: f, stack: []*block{newBlock(width)}}
}

func (f *Flattener) match(n *html.Node) formatFunc {
	for _, sf := range f.selectors {
		if sf.sel.Match(n) {
			return sf.format
		}
	}
	return nil
}

// formatTaskList renders checklist items with a checked or unchecked glyph.
func (f *Flattener) formatTaskList(w *walker, n *html.Node) {
	w.list(n, func(li *html.Node) string {
		if hasClass(li, "checked") {
			return " " + f.checked + " "
		}
		return " " + f.unchecked + " "
	})
}

// formatParagraph renders <p> as its own block, or inline inside a list item.
func formatParagraph(w *walker, n *html.Node) {
	if n.Parent != nil && n.Parent.Type == html.ElementNode && n.Parent.Data == "li" {
		w.children(n)
		return
	}
	leading := 2
	if attr(n, "data-spacing") == "single" {
		leading = 1
	}
	w.openBlock(leading, 0)
	w.children(n)
	w.closeBlock(1, nil)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
