package flatten

import (
	"strconv"
	"strings"

	"github.com/LaffeyOvO/notesnook/core/wrap"
	"golang.org/x/net/html"
)

type listItem struct {
	node   *html.Node
	prefix string
}

// list renders the children of a <ul>/<ol>-like element. prefix is called
// once per <li>, in order. All items are indented by the widest prefix, so
// " 9. " and " 10. " line up.
func (w *walker) list(n *html.Node, prefix func(li *html.Node) string) {
	nested := n.Parent != nil && n.Parent.Type == html.ElementNode && n.Parent.Data == "li"

	var items []listItem
	maxWidth := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			continue
		case c.Type == html.CommentNode:
			continue
		case c.Type != html.ElementNode || c.Data != "li":
			items = append(items, listItem{node: c})
			continue
		}
		p := prefix(c)
		if nested {
			p = strings.TrimLeft(p, " ")
		}
		maxWidth = max(maxWidth, wrap.Width(p))
		items = append(items, listItem{node: c, prefix: p})
	}
	if len(items) == 0 {
		return
	}

	breaks := 2
	if nested {
		breaks = 1
	}

	w.openBlock(breaks, 0)
	for _, item := range items {
		w.openBlock(1, maxWidth)
		if item.node.Type == html.ElementNode && item.node.Data == "li" {
			w.children(item.node)
		} else {
			w.node(item.node)
		}
		w.closeListItem(item.prefix, maxWidth)
	}
	w.closeBlock(breaks, nil)
}

// closeListItem pops a list item, hangs its prefix in front of the first
// line and indents the rest.
func (w *walker) closeListItem(prefix string, width int) {
	b := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	pad := prefix + strings.Repeat(" ", width-wrap.Width(prefix))
	text := prefixLines(b.text(), pad, strings.Repeat(" ", width))

	trailing := 1
	if b.inline.Empty() && b.stashed > trailing {
		trailing = b.stashed
	}
	w.top().add(text, 1, trailing)
}

// orderedList numbers items from the start attribute using the type
// attribute's counter style.
func (w *walker) orderedList(n *html.Node) {
	start := 1
	if s, err := strconv.Atoi(attr(n, "start")); err == nil {
		start = s
	}
	index := indexFunc(attr(n, "type"))
	i := 0
	w.list(n, func(*html.Node) string {
		p := " " + index(start+i) + ". "
		i++
		return p
	})
}

func indexFunc(listType string) func(int) string {
	switch listType {
	case "a":
		return func(i int) string { return strings.ToLower(letters(i)) }
	case "A":
		return letters
	case "i":
		return func(i int) string { return strings.ToLower(roman(i)) }
	case "I":
		return roman
	default:
		return strconv.Itoa
	}
}

// letters converts 1, 2, ..., 26, 27 into A, B, ..., Z, AA.
func letters(i int) string {
	if i <= 0 {
		return strconv.Itoa(i)
	}
	var out []byte
	for i > 0 {
		i--
		out = append([]byte{byte('A' + i%26)}, out...)
		i /= 26
	}
	return string(out)
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(i int) string {
	if i <= 0 || i >= 4000 {
		return strconv.Itoa(i)
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for i >= r.value {
			b.WriteString(r.symbol)
			i -= r.value
		}
	}
	return b.String()
}
