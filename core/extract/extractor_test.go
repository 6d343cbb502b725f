package extract

import (
	"testing"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/flatten"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks(t *testing.T) {
	e := New(flatten.New())

	t.Run("document order", func(t *testing.T) {
		blocks, err := e.Blocks(`<p data-block-id="a">Hello</p><p data-block-id="b">World</p>`)
		require.NoError(t, err)
		assert.Equal(t, []core.ContentBlock{
			{ID: "a", Type: "p", Content: "Hello"},
			{ID: "b", Type: "p", Content: "World"},
		}, blocks)
	})

	t.Run("nested and typed", func(t *testing.T) {
		blocks, err := e.Blocks(`<ul data-block-id="l"><li data-block-id="i1">one</li></ul><h2 data-block-id="h">Head</h2>`)
		require.NoError(t, err)
		require.Len(t, blocks, 3)
		assert.Equal(t, "ul", blocks[0].Type)
		assert.Equal(t, " * one", blocks[0].Content)
		assert.Equal(t, "li", blocks[1].Type)
		assert.Equal(t, "h2", blocks[2].Type)
		assert.Equal(t, "HEAD", blocks[2].Content)
	})

	t.Run("duplicates and empty ids", func(t *testing.T) {
		blocks, err := e.Blocks(`<p data-block-id="x">1</p><p data-block-id="">skip</p><p data-block-id="x">2</p>`)
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, "x", blocks[0].ID)
		assert.Equal(t, "x", blocks[1].ID)
	})

	t.Run("none", func(t *testing.T) {
		blocks, err := e.Blocks(`<p>plain</p>`)
		require.NoError(t, err)
		assert.NotNil(t, blocks)
		assert.Empty(t, blocks)
	})
}

func TestHeadline(t *testing.T) {
	e := New(flatten.New())
	assert.Equal(t, "First line", e.Headline("<h1>T</h1><p>First\n  line</p><p>Second</p>"))
	assert.Equal(t, "", e.Headline("<div>no paragraph</div>"))
}
