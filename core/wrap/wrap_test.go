package wrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		b := New(80)
		b.Text("  hello \t  world  ", true)
		assert.Equal(t, "hello world", b.String())
	})

	t.Run("wraps at the limit", func(t *testing.T) {
		b := New(10)
		b.Text("aaaa bbbb cccc dddd", false)
		assert.Equal(t, "aaaa bbbb\ncccc dddd", b.String())
	})

	t.Run("long words get their own line", func(t *testing.T) {
		b := New(5)
		b.Text("a abcdefghij b", false)
		assert.Equal(t, "a\nabcdefghij\nb", b.String())
	})

	t.Run("preserves newlines after content", func(t *testing.T) {
		b := New(80)
		b.Text("\n\na\n\nb\n", true)
		assert.Equal(t, "a\n\nb", b.String())
	})

	t.Run("words across calls join without space", func(t *testing.T) {
		b := New(80)
		b.Text("foo", true)
		b.Text("bar", true)
		b.Text(" baz", true)
		assert.Equal(t, "foobar baz", b.String())
	})

	t.Run("measures display width", func(t *testing.T) {
		assert.Equal(t, 2, Width("✅"))
		assert.Equal(t, 3, Width("abc"))
	})

	t.Run("empty", func(t *testing.T) {
		b := New(80)
		b.Text(" \n ", true)
		assert.True(t, b.Empty())
		assert.Equal(t, "", b.String())
	})
}

func TestWrap(t *testing.T) {
	text := strings.Repeat("word ", 20) + "\nnext"
	out := Wrap(text, 20)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, Width(line), 20)
	}
	assert.True(t, strings.HasSuffix(out, "\nnext"))
}
