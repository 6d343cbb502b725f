package link

import (
	"context"
	"errors"
	"testing"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("note link", func(t *testing.T) {
		l, ok := Parse("nn://note/abc123")
		require.True(t, ok)
		assert.Equal(t, core.InternalLink{Type: "note", ID: "abc123"}, l)
	})

	t.Run("block link", func(t *testing.T) {
		l, ok := Parse("nn://note/abc123?blockId=b1")
		require.True(t, ok)
		assert.Equal(t, "b1", l.Params[ParamBlockID])
	})

	t.Run("rejects other schemes and types", func(t *testing.T) {
		for _, href := range []string{
			"https://example.com",
			"nn://",
			"nn://note/",
			"nn://notebook/abc",
			"nn://%zz/abc",
		} {
			_, ok := Parse(href)
			assert.False(t, ok, href)
		}
	})
}

func TestCreate(t *testing.T) {
	assert.Equal(t, "nn://note/abc", NoteLink("abc", ""))
	assert.Equal(t, "nn://note/abc?blockId=b1", NoteLink("abc", "b1"))

	l, ok := Parse(NoteLink("abc", "b1"))
	require.True(t, ok)
	assert.Equal(t, "abc", l.ID)
	assert.Equal(t, "b1", l.Params[ParamBlockID])
}

func TestQueue(t *testing.T) {
	q := NewQueue()
	assert.True(t, q.Add("a", 0))
	assert.True(t, q.Add("b", 1))
	assert.False(t, q.Add("a", 2))
	assert.Equal(t, 2, q.Seen())

	id, depth := q.Next()
	assert.Equal(t, "a", id)
	assert.Equal(t, 0, depth)
	assert.True(t, q.HasNext())

	d, ok := q.Depth("b")
	assert.True(t, ok)
	assert.Equal(t, 1, d)
}

// mapFetcher serves notes from memory, keyed by location.
type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, location string) (*core.FetchResult, error) {
	html, ok := m[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return &core.FetchResult{Location: location, HTML: html}, nil
}

func TestWalk(t *testing.T) {
	locate := func(id string) string { return id }
	fetcher := mapFetcher{
		"a": `<p><a href="nn://note/b">b</a> <a href="nn://note/c">c</a> <a href="https://x.io">x</a></p>`,
		"b": `<p><a href="nn://note/a">back</a> <a href="nn://note/missing">gone</a></p>`,
		"c": `<p><a href="nn://note/d?blockId=1">d</a></p>`,
		"d": `<p>leaf</p>`,
	}

	t.Run("breadth first", func(t *testing.T) {
		g, err := Walk(context.Background(), "a", fetcher, locate, WalkOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, g.Notes)
		assert.Equal(t, []string{"missing"}, g.Missing)
		assert.Len(t, g.Links["a"], 2)
	})

	t.Run("max depth", func(t *testing.T) {
		g, err := Walk(context.Background(), "a", fetcher, locate, WalkOptions{MaxDepth: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, g.Notes)
	})

	t.Run("max notes", func(t *testing.T) {
		g, err := Walk(context.Background(), "a", fetcher, locate, WalkOptions{MaxNotes: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, g.Notes)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := Walk(context.Background(), "zzz", fetcher, locate, WalkOptions{})
		assert.Error(t, err)
	})
}

func TestDirLocator(t *testing.T) {
	assert.Equal(t, "notes/abc.html", DirLocator("notes")("abc"))
}
