package core

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternHistory_AddIsMostRecentFirst(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("a")
	h.Add("b")
	h.Add("c")
	assert.Equal(t, []string{"c", "b", "a"}, h.Patterns())
}

func TestPatternHistory_AddDeduplicates(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("b")
	assert.Equal(t, []string{"b", "c", "a"}, h.Patterns())
}

func TestPatternHistory_AddIgnoresBlank(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("   ")
	assert.Empty(t, h.Patterns())
}

func TestPatternHistory_Bounded(t *testing.T) {
	h := NewPatternHistory("")
	for i := 0; i < 150; i++ {
		h.Add("p" + strconv.Itoa(i))
	}
	got := h.Patterns()
	require.Len(t, got, 100)
	assert.Equal(t, "p149", got[0])
	assert.Equal(t, "p50", got[99])
}

func TestPatternHistory_UpDownRecall(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("a")
	h.Add("b")
	h.Add("c")

	assert.Equal(t, "c", h.Up(""))
	assert.Equal(t, "b", h.Up(""))
	assert.Equal(t, "a", h.Up(""))
	// Reversing direction steps back through the same entries.
	assert.Equal(t, "a", h.Down(""))
	assert.Equal(t, "b", h.Down(""))
	assert.Equal(t, "c", h.Down(""))
}

func TestPatternHistory_UpPastOldestKeepsHint(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("a")
	assert.Equal(t, "a", h.Up(""))
	assert.Equal(t, "", h.Up(""))
}

func TestPatternHistory_PrefixFilter(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("alpha")
	h.Add("beta")
	h.Add("align")

	assert.Equal(t, "align", h.Up("al"))
	assert.Equal(t, "alpha", h.Up("al"))
}

func TestPatternHistory_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewPatternHistory(path)
	h.Add("first")
	h.Add("second")
	require.NoError(t, h.Persist())

	reloaded := NewPatternHistory(path)
	assert.Equal(t, []string{"second", "first"}, reloaded.Patterns())
}

func TestPatternHistory_MemoryOnlyPersistIsNoop(t *testing.T) {
	h := NewPatternHistory("")
	h.Add("x")
	assert.NoError(t, h.Persist())
}
