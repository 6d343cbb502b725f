package flatten

import (
	"strings"

	"github.com/LaffeyOvO/notesnook/core/wrap"
	"golang.org/x/net/html"
)

// block is one level of the output stack. Finished child blocks are joined
// into raw; loose inline text collects in inline until the next block.
type block struct {
	raw     string
	inline  *wrap.Builder
	leading int // line breaks wanted before this block
	stashed int // line breaks owed after the last child block
}

func newBlock(width int) *block {
	return &block{inline: wrap.New(width)}
}

func (b *block) width() int {
	return b.inline.Limit()
}

func (b *block) text() string {
	in := b.inline.String()
	switch {
	case in == "":
		return b.raw
	case b.raw == "":
		return in
	}
	return b.raw + strings.Repeat("\n", b.stashed) + in
}

// add appends a finished child block.
func (b *block) add(text string, leading, trailing int) {
	if text == "" {
		return
	}
	hadInline := !b.inline.Empty()
	parent := b.text()
	b.inline.Reset()

	breaks := leading
	if !hadInline && b.stashed > breaks {
		breaks = b.stashed
	}
	if parent == "" {
		b.raw = text
		b.leading = max(b.leading, breaks)
	} else {
		b.raw = parent + strings.Repeat("\n", breaks) + text
	}
	b.stashed = trailing
}

// walker drives a depth-first walk of the node tree into a block stack.
type walker struct {
	f     *Flattener
	stack []*block
}

func (w *walker) top() *block {
	return w.stack[len(w.stack)-1]
}

func (w *walker) result() string {
	return w.stack[0].text()
}

// openBlock starts a block narrower than its parent by reserved columns.
func (w *walker) openBlock(leading, reserved int) {
	width := w.top().width()
	if width > 0 {
		width = max(width-reserved, 1)
	}
	b := newBlock(width)
	b.leading = leading
	w.stack = append(w.stack, b)
}

// closeBlock pops the current block into its parent, optionally
// transforming its text first.
func (w *walker) closeBlock(trailing int, transform func(string) string) {
	b := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	text := b.text()
	if transform != nil && text != "" {
		text = transform(text)
	}
	if b.inline.Empty() && b.stashed > trailing {
		trailing = b.stashed
	}
	w.top().add(text, b.leading, trailing)
}

func (w *walker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

func (w *walker) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.top().inline.Text(n.Data, true)
	case html.ElementNode:
		w.element(n)
	case html.DocumentNode:
		w.children(n)
	}
}

func (w *walker) element(n *html.Node) {
	if format := w.f.match(n); format != nil {
		format(w, n)
		return
	}

	switch n.Data {
	case "script", "style", "head", "title", "template", "noscript":
	case "br":
		w.top().inline.Break()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.openBlock(3, 0)
		w.children(n)
		w.closeBlock(2, strings.ToUpper)
	case "blockquote":
		w.openBlock(2, 2)
		w.children(n)
		w.closeBlock(2, quote)
	case "pre":
		w.top().add(strings.TrimRight(textContent(n), "\n"), 2, 2)
	case "hr":
		width := w.top().width()
		if width <= 0 {
			width = 40
		}
		w.top().add(strings.Repeat("-", width), 2, 2)
	case "ul":
		w.list(n, func(*html.Node) string { return " * " })
	case "ol":
		w.orderedList(n)
	case "a":
		w.anchor(n)
	case "img":
		if alt := attr(n, "alt"); alt != "" {
			w.top().inline.Text(alt, false)
		}
	case "div", "section", "article", "header", "footer", "main", "nav", "aside",
		"figure", "figcaption", "details", "summary", "address", "dl", "dt", "dd",
		"li", "form", "fieldset", "caption":
		w.openBlock(1, 0)
		w.children(n)
		w.closeBlock(1, nil)
	default:
		w.children(n)
	}
}

// anchor renders the link text followed by its target in brackets.
func (w *walker) anchor(n *html.Node) {
	w.children(n)

	href := strings.TrimPrefix(attr(n, "href"), "mailto:")
	if href == "" || strings.HasPrefix(href, "#") {
		return
	}
	if strings.TrimSpace(textContent(n)) == href {
		return
	}
	in := w.top().inline
	in.Space()
	in.Word("[" + href + "]")
}

// quote prefixes every line with "> ".
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// prefixLines puts first before the first line and rest before every
// following non-empty line.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = strings.TrimRight(first+l, " ")
		case l != "":
			lines[i] = rest + l
		}
	}
	return strings.Join(lines, "\n")
}
