package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCut_MarkRegionSingleLine(t *testing.T) {
	d := NewDocumentFromText("hello world")
	d.ToggleMark()
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 5}})

	var cb CutBuffer
	d.Cut(&cb)

	assert.Equal(t, []string{"hello"}, cb.Fragments())
	assert.Equal(t, " world", d.Text())
	assert.Equal(t, Position{Line: 0, Col: 0}, d.Cursor().Position)
	assert.False(t, d.MarkSet())
}

func TestCutUncut_MarkRegionRoundTrip(t *testing.T) {
	d := NewDocumentFromText("alpha\nbeta\ngamma")
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 2}})
	d.ToggleMark()
	d.SetCursor(Cursor{Position: Position{Line: 2, Col: 3}})

	var cb CutBuffer
	d.Cut(&cb)
	require.Equal(t, []string{"pha", "beta", "gam"}, cb.Fragments())
	require.Equal(t, "alma", d.Text())
	require.Equal(t, Position{Line: 0, Col: 2}, d.Cursor().Position)

	d.Uncut(&cb)
	assert.Equal(t, "alpha\nbeta\ngamma", d.Text())
	assert.Equal(t, Position{Line: 2, Col: 3}, d.Cursor().Position)
}

func TestCutUncut_WholeLineRoundTrip(t *testing.T) {
	d := NewDocumentFromText("one\ntwo\nthree")
	d.SetCursor(Cursor{Position: Position{Line: 1, Col: 0}})

	var cb CutBuffer
	d.Cut(&cb)
	require.Equal(t, []string{"two"}, cb.Fragments())
	require.Equal(t, []string{"one", "three"}, d.Lines())

	d.Uncut(&cb)
	assert.Equal(t, []string{"one", "two", "three"}, d.Lines())
	// The cursor lands below the reinserted lines, nano-style.
	assert.Equal(t, Position{Line: 2, Col: 0}, d.Cursor().Position)
}

func TestCut_LastLineMovesCursorUp(t *testing.T) {
	d := NewDocumentFromText("a\nb")
	d.SetCursor(Cursor{Position: Position{Line: 1, Col: 0}})

	var cb CutBuffer
	d.Cut(&cb)

	assert.Equal(t, []string{"a"}, d.Lines())
	assert.Equal(t, Position{Line: 0, Col: 0}, d.Cursor().Position)
}

func TestCut_OnlyLineLeavesEmptyBuffer(t *testing.T) {
	d := NewDocumentFromText("solo")

	var cb CutBuffer
	d.Cut(&cb)

	assert.Equal(t, []string{""}, d.Lines())
	assert.Equal(t, []string{"solo"}, cb.Fragments())
	assert.Equal(t, "solo\n", cb.Text())
}

func TestCutToEnd(t *testing.T) {
	d := NewDocumentFromText("hello world")
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 5}})

	var cb CutBuffer
	d.CutToEnd(&cb)

	assert.Equal(t, []string{" world"}, cb.Fragments())
	assert.Equal(t, "hello", d.Text())
}

func TestCopy_WholeLineAdvancesWithoutMutating(t *testing.T) {
	d := NewDocumentFromText("one\ntwo")

	var cb CutBuffer
	d.Copy(&cb)

	assert.Equal(t, []string{"one"}, cb.Fragments())
	assert.Equal(t, "one\ntwo", d.Text())
	assert.Equal(t, 1, d.Cursor().Line)
}

func TestUncut_EmptyBufferIsNoop(t *testing.T) {
	d := NewDocumentFromText("text")

	var cb CutBuffer
	d.Uncut(&cb)

	assert.Equal(t, "text", d.Text())
}

func TestMatching_ForwardWithNesting(t *testing.T) {
	d := NewDocumentFromText("((x))")
	require.NoError(t, d.Matching())
	assert.Equal(t, Position{Line: 0, Col: 4}, d.Cursor().Position)
}

func TestMatching_Backward(t *testing.T) {
	d := NewDocumentFromText("(a[b]c)")
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 6}})
	require.NoError(t, d.Matching())
	assert.Equal(t, Position{Line: 0, Col: 0}, d.Cursor().Position)
}

func TestMatching_AcrossLinesSkipsEmpty(t *testing.T) {
	d := NewDocumentFromText("{\n\n}")
	require.NoError(t, d.Matching())
	assert.Equal(t, Position{Line: 2, Col: 0}, d.Cursor().Position)
}

func TestMatching_NotABracket(t *testing.T) {
	d := NewDocumentFromText("abc")
	err := d.Matching()
	assert.ErrorIs(t, err, ErrNotABracket)
	assert.True(t, IsNotFound(err))
}

func TestMatching_NoMatch(t *testing.T) {
	d := NewDocumentFromText("(((")
	assert.ErrorIs(t, d.Matching(), ErrNoMatchingBracket)
}
