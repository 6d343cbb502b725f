package flatten

import (
	"fmt"
	"strings"
	"testing"

	"github.com/LaffeyOvO/notesnook/core/wrap"
	"github.com/stretchr/testify/assert"
)

func TestFlattenParagraphs(t *testing.T) {
	f := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double spacing", `<p>Hello</p><p>World</p>`, "Hello\n\nWorld"},
		{"single spacing", `<p>Hello</p><p data-spacing="single">World</p>`, "Hello\nWorld"},
		{"whitespace between blocks", "<p>a</p>\n<p>b</p>\n", "a\n\nb"},
		{"line break", `<p>a<br>b</p>`, "a\nb"},
		{"preserved newline", "<p>a\nb</p>", "a\nb"},
		{"collapsed spaces", "<p>  a   <b>b</b>  c </p>", "a b c"},
		{"text after block", `<p>a</p>tail`, "a\ntail"},
		{"heading", `<h1>Title</h1><p>body</p>`, "TITLE\n\nbody"},
		{"quote", `<blockquote><p>q</p></blockquote>`, "> q"},
		{"pre", "<pre>a  b\n  c</pre>", "a  b\n  c"},
		{"link", `<p><a href="https://x.io">site</a></p>`, "site [https://x.io]"},
		{"link same as text", `<p><a href="https://x.io">https://x.io</a></p>`, "https://x.io"},
		{"image alt", `<p><img src="x.png" alt="cat"></p>`, "cat"},
		{"script skipped", `<p>a</p><script>var x = 1;</script>`, "a"},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Flatten(tt.in))
		})
	}
}

func TestFlattenWrapping(t *testing.T) {
	f := New()
	out := f.Flatten("<p>" + strings.Repeat("lorem ipsum ", 30) + "</p>")
	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, wrap.Width(l), DefaultWordWrap)
	}

	narrow := New(WithWordWrap(10))
	assert.Equal(t, "aaaa bbbb\ncccc", narrow.Flatten("<p>aaaa bbbb cccc</p>"))
}

func TestFlattenLists(t *testing.T) {
	f := New()

	t.Run("unordered", func(t *testing.T) {
		assert.Equal(t, " * a\n * b", f.Flatten(`<ul><li>a</li><li>b</li></ul>`))
	})

	t.Run("ordered aligns by widest prefix", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("<ol>")
		for i := 1; i <= 10; i++ {
			fmt.Fprintf(&b, "<li>item%d</li>", i)
		}
		b.WriteString("</ol>")

		lines := strings.Split(f.Flatten(b.String()), "\n")
		assert.Len(t, lines, 10)
		assert.Equal(t, " 1.  item1", lines[0])
		assert.Equal(t, " 10. item10", lines[9])
	})

	t.Run("ordered with start and type", func(t *testing.T) {
		assert.Equal(t, " iii. x\n iv.  y", f.Flatten(`<ol start="3" type="i"><li>x</li><li>y</li></ol>`))
		assert.Equal(t, " A. x\n B. y", f.Flatten(`<ol type="A"><li>x</li><li>y</li></ol>`))
	})

	t.Run("nested", func(t *testing.T) {
		assert.Equal(t, " * a\n   * b", f.Flatten(`<ul><li>a<ul><li>b</li></ul></li></ul>`))
	})

	t.Run("paragraph inside item is inline", func(t *testing.T) {
		assert.Equal(t, " * a", f.Flatten(`<ul><li><p>a</p></li></ul>`))
	})

	t.Run("list after paragraph", func(t *testing.T) {
		assert.Equal(t, "intro\n\n * a", f.Flatten(`<p>intro</p><ul><li>a</li></ul>`))
	})
}

func TestFlattenChecklist(t *testing.T) {
	f := New()
	out := f.Flatten(`<ul class="checklist"><li class="checked"><p>Done</p></li><li><p>Todo</p></li></ul>`)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)

	checked := " " + CheckedGlyph + " "
	unchecked := " " + UncheckedGlyph + " "
	width := max(wrap.Width(checked), wrap.Width(unchecked))

	assert.Equal(t, checked+strings.Repeat(" ", width-wrap.Width(checked))+"Done", lines[0])
	assert.Equal(t, unchecked+strings.Repeat(" ", width-wrap.Width(unchecked))+"Todo", lines[1])

	t.Run("simple checklist", func(t *testing.T) {
		out := f.Flatten(`<ul class="simple-checklist"><li class="checked">x</li></ul>`)
		assert.Equal(t, " "+CheckedGlyph+" x", out)
	})

	t.Run("custom glyphs", func(t *testing.T) {
		g := New(WithChecklistGlyphs("[x]", "[ ]"))
		out := g.Flatten(`<ul class="checklist"><li class="checked">a</li><li>b</li></ul>`)
		assert.Equal(t, " [x] a\n [ ] b", out)
	})
}

func TestFlattenTable(t *testing.T) {
	f := New()
	in := `<table><thead><tr><th>Name</th><th>Qty</th></tr></thead>` +
		`<tbody><tr><td>apple</td><td>10</td></tr><tr><td>fig</td><td>2</td></tr></tbody></table>`
	assert.Equal(t, "NAME    QTY\napple   10\nfig     2", f.Flatten(in))

	t.Run("colspan pads the row", func(t *testing.T) {
		out := f.Flatten(`<table><tr><td colspan="2">a</td><td>b</td></tr><tr><td>1</td><td>2</td><td>3</td></tr></table>`)
		assert.Equal(t, "a       b\n1   2   3", out)
	})

	t.Run("colspan below two is ignored", func(t *testing.T) {
		out := f.Flatten(`<table><tr><td colspan="0">x</td><td colspan="-4">y</td><td colspan="1">z</td></tr></table>`)
		assert.Equal(t, "x   y   z", out)
	})

	t.Run("huge colspan is clamped", func(t *testing.T) {
		out := f.Flatten(`<table><tr><td colspan="200000000">x</td></tr><tr><td>a</td><td colspan="99999999999999999999">b</td></tr></table>`)
		assert.Equal(t, "x\na   b", out)
	})

	t.Run("surrounded by paragraphs", func(t *testing.T) {
		out := f.Flatten(`<p>a</p><table><tr><td>x</td></tr></table><p>b</p>`)
		assert.Equal(t, "a\n\nx\n\nb", out)
	})
}

func TestFlattenDeterministic(t *testing.T) {
	f := New()
	in := `<h2>T</h2><ul class="checklist"><li class="checked">a</li></ul><table><tr><td>1</td></tr></table>`
	first := f.Flatten(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, f.Flatten(in))
	}
}

func TestIndexFuncs(t *testing.T) {
	assert.Equal(t, "XIV", roman(14))
	assert.Equal(t, "MCMXCIV", roman(1994))
	assert.Equal(t, "AA", letters(27))
	assert.Equal(t, "Z", letters(26))
}
