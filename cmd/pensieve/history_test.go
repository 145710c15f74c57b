package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAdd(t *testing.T) {
	h := newHistory(3)
	for _, line := range []string{"p", "  ", "q", "q", " r ", "s"} {
		h.add(line)
	}
	assert.Equal(t, []string{"q", "r", "s"}, h.lines)

	h = newHistory(0)
	h.add("p")
	assert.Empty(t, h.lines)
}

func TestHistoryBrowse(t *testing.T) {
	h := newHistory(10)
	h.add("p & q")
	h.add("p | q")

	_, ok := h.next()
	assert.False(t, ok, "next before browsing")

	line, ok := h.prev("draft")
	require.True(t, ok)
	assert.Equal(t, "p | q", line)
	line, ok = h.prev("p | q")
	require.True(t, ok)
	assert.Equal(t, "p & q", line)
	_, ok = h.prev("p & q")
	assert.False(t, ok, "prev past the oldest line")

	line, ok = h.next()
	require.True(t, ok)
	assert.Equal(t, "p | q", line)
	line, ok = h.next()
	require.True(t, ok)
	assert.Equal(t, "draft", line)
	_, ok = h.next()
	assert.False(t, ok)

	// Adding a line ends browsing.
	h.prev("")
	h.add("!p")
	line, ok = h.prev("")
	require.True(t, ok)
	assert.Equal(t, "!p", line)
}

func TestHistoryPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")
	h := newHistory(2)
	require.NoError(t, h.load(path), "missing file")
	h.add("1 + 2")
	h.add("p, q")
	require.NoError(t, h.save(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2\np, q\n", string(b))

	h = newHistory(1)
	require.NoError(t, h.load(path))
	assert.Equal(t, []string{"p, q"}, h.lines)
	line, ok := h.prev("")
	require.True(t, ok)
	assert.Equal(t, "p, q", line)
}

func TestHistoryNoFile(t *testing.T) {
	h := newHistory(5)
	h.add("p")
	assert.NoError(t, h.save(""))
	assert.NoError(t, h.load(""))
	assert.Equal(t, []string{"p"}, h.lines)
}
