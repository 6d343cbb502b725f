package attachment

import (
	"context"
	"testing"

	"github.com/LaffeyOvO/notesnook/core/dataurl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	t.Run("idempotent per content", func(t *testing.T) {
		h1, err := s.Save(ctx, []byte("png bytes"), "image/png", "a.png")
		require.NoError(t, err)
		h2, err := s.Save(ctx, []byte("png bytes"), "image/png", "b.png")
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
		assert.Len(t, h1, 16)
		assert.Equal(t, Hash([]byte("png bytes")), h1)

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a.png", list[0].Filename)
	})

	t.Run("empty data is not stored", func(t *testing.T) {
		h, err := s.Save(ctx, nil, "image/png", "")
		require.NoError(t, err)
		assert.Empty(t, h)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	h, err := s.Save(ctx, []byte{1, 2, 3}, "image/gif", "x.gif")
	require.NoError(t, err)

	a, data, err := s.Get(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", a.Mime)
	assert.Equal(t, int64(3), a.Size)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, _, err = s.Get(ctx, "0000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = s.Get(ctx, "../attachments.db")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	h, err := s.Save(ctx, []byte("hello"), "image/png", "")
	require.NoError(t, err)

	urls, err := s.Resolve(ctx, []string{h, "missing"})
	require.NoError(t, err)
	require.Len(t, urls, 1)

	d, err := dataurl.Decode(urls[h])
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.MimeType)
	assert.Equal(t, []byte("hello"), d.Data)
}
