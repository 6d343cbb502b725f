package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Verdict tells Rewrite what to do with a visited tag.
type Verdict int

const (
	// Keep leaves the tag in place, re-serialising it if its attributes changed.
	Keep Verdict = iota
	// Remove drops the tag together with everything up to its closing tag.
	Remove
)

// RewriteFunc is called once per opening tag, in document order.
type RewriteFunc func(tag string, attrs *Attributes, pos Position) Verdict

// Rewrite returns data with fn applied to every opening tag. Tokens that fn
// does not modify are copied byte for byte.
func Rewrite(data string, fn RewriteFunc) string {
	var b strings.Builder
	b.Grow(len(data))

	z := html.NewTokenizer(strings.NewReader(data))
	offset := 0

	// Name and nesting depth of the element being removed, if any.
	var skipTag string
	depth := 0

	for {
		tt := z.Next()
		// Copy before Token(): the tokenizer lower-cases names in place.
		raw := string(z.Raw())
		pos := Position{Start: offset, End: offset + len(raw)}
		offset = pos.End

		if depth > 0 {
			switch tt {
			case html.ErrorToken:
				return b.String()
			case html.StartTagToken:
				if name, _ := z.TagName(); string(name) == skipTag {
					depth++
				}
			case html.EndTagToken:
				if name, _ := z.TagName(); string(name) == skipTag {
					depth--
				}
			}
			continue
		}

		switch tt {
		case html.ErrorToken:
			b.WriteString(raw)
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			attrs := newAttributes(tok.Attr)
			if fn(tok.Data, attrs, pos) == Remove {
				if tt == html.StartTagToken && !IsVoid(tok.Data) {
					skipTag = tok.Data
					depth = 1
				}
				continue
			}
			if attrs.Modified() {
				tok.Attr = attrs.htmlAttrs()
				b.WriteString(tok.String())
				continue
			}
		}
		b.WriteString(raw)
	}
}
