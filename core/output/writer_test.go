package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFor(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"notes/Shopping List.html", "Shopping_List"},
		{"/abs/path/abc-123.html", "abc-123"},
		{"https://example.com/n/abc.html", "abc"},
		{"https://example.com/", "example_com"},
		{"plain", "plain"},
		{".html", "note"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFor(tt.location))
		})
	}
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	t.Run("note", func(t *testing.T) {
		p, err := w.WriteNote("notes/index.html", []byte("hello"), ".md")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "index.md"), p)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("linked", func(t *testing.T) {
		p, err := w.WriteLinked("notes/index.html", "abc/def", []byte("x"), ".txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "index", "abc_def.txt"), p)
		assert.FileExists(t, p)
	})

	t.Run("raw", func(t *testing.T) {
		p, err := w.WriteRaw("index.post.html", []byte("<p>x</p>"))
		require.NoError(t, err)
		assert.FileExists(t, p)
	})
}
