package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/transcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = `<h1>Groceries</h1>` +
	`<p data-block-id="b1">Buy <strong>fresh</strong> fruit</p>` +
	`<ul class="checklist"><li class="checked"><p>apples</p></li><li><p>figs</p></li></ul>` +
	`<img data-hash="abc" alt="receipt">` +
	`<p><a href="nn://note/n2">Pantry</a></p>`

func TestTextRenderer(t *testing.T) {
	r := NewTextRenderer()
	out, err := r.Render(transcode.New("<p>Hello</p><p>World</p>"), core.NoteMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\nWorld\n", string(out))
	assert.Equal(t, ".txt", r.Extension())

	out, err = r.Render(transcode.New(""), core.NoteMetadata{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()

	t.Run("keeps own heading", func(t *testing.T) {
		out, err := r.Render(transcode.New("<h1>Own</h1><p>x</p>"), core.NoteMetadata{Title: "Meta"})
		require.NoError(t, err)
		assert.Equal(t, "# Own\n\nx\n", string(out))
	})

	t.Run("adds title", func(t *testing.T) {
		out, err := r.Render(transcode.New("<p>x</p>"), core.NoteMetadata{Title: "Meta"})
		require.NoError(t, err)
		assert.Equal(t, "# Meta\n\nx\n", string(out))
	})
}

func TestJSONRenderer(t *testing.T) {
	meta := core.NoteMetadata{Source: "groceries.html", Title: "Groceries"}
	out, err := NewJSONRenderer().Render(transcode.New(sampleNote), meta)
	require.NoError(t, err)

	var report core.NoteJSON
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, meta, report.Metadata)
	assert.Equal(t, "Buy fresh fruit", report.Headline)
	assert.Contains(t, report.Text, "GROCERIES")
	assert.Contains(t, report.Markdown, "# Groceries")
	assert.Equal(t, []core.ContentBlock{{ID: "b1", Type: "p", Content: "Buy fresh fruit"}}, report.Blocks)
	assert.Equal(t, []string{"abc"}, report.Hashes)
	assert.Equal(t, []core.InternalLink{{Type: "note", ID: "n2"}}, report.Links)
}

func TestJSONRendererEmptyLists(t *testing.T) {
	out, err := NewJSONRenderer().Render(transcode.New("<p>plain</p>"), core.NoteMetadata{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"blocks": []`)
	assert.Contains(t, string(out), `"hashes": []`)
	assert.Contains(t, string(out), `"internal_links": []`)
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(transcode.New(sampleNote+"<pre><code>x := 1</code></pre><hr><blockquote>q</blockquote>"),
		core.NoteMetadata{Source: "groceries.html"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, ".pdf", r.Extension())
}

func TestCleanInline(t *testing.T) {
	assert.Equal(t, "bold and code and link", cleanInline("**bold** and `code` and [link](nn://note/x)"))
	assert.Equal(t, "an emphasised word", cleanInline("an *emphasised* word"))
	assert.Equal(t, "1. item", cleanInline(`1\. item`))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line  string
		kind  lineKind
		level int
	}{
		{"", lineBlank, 0},
		{"```go", lineFence, 0},
		{"## Heading", lineHeading, 2},
		{"- item", lineBullet, 0},
		{"  - nested", lineBullet, 2},
		{"3. third", lineNumbered, 0},
		{"> quoted", lineQuote, 0},
		{"---", lineRule, 0},
		{"plain", lineText, 0},
	}
	for _, tt := range tests {
		kind, level := classify(tt.line)
		assert.Equal(t, tt.kind, kind, tt.line)
		assert.Equal(t, tt.level, level, tt.line)
	}
}
