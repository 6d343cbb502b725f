// Package markup wraps golang.org/x/net/html for note markup.
//
// It offers two explicit capabilities: a streaming tag visitor (Scan) that
// walks the tokens once without building a tree, and a tree parse
// (ParseDocument) for structural queries. Rewrite reuses the visitor to emit
// a new document in which only the tags touched by the callback change.
// None of them fail on malformed input.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Position is the byte range [Start, End) of an opening tag in the source.
// It is comparable and stable for a given input, so callers use it as a key.
type Position struct {
	Start int
	End   int
}

// TagFunc is called once per opening tag, in document order.
type TagFunc func(tag string, attrs *Attributes, pos Position)

// voidElements never have content or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether tag is an HTML void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// Scan visits every opening and self-closing tag of data. Attribute changes
// made by fn are discarded; use Rewrite to keep them.
func Scan(data string, fn TagFunc) {
	z := html.NewTokenizer(strings.NewReader(data))
	offset := 0
	for {
		tt := z.Next()
		size := len(z.Raw())
		pos := Position{Start: offset, End: offset + size}
		offset = pos.End

		switch tt {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			fn(tok.Data, newAttributes(tok.Attr), pos)
		}
	}
}

// ParseDocument parses data into a full node tree. Fragments are wrapped in
// html/body the way a browser would.
func ParseDocument(data string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(data))
}
