package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextMatch_ScansForwardThenWrapsOnce(t *testing.T) {
	d := NewDocumentFromText("foo\nbar\nfoo")
	s := &SearchState{Pattern: "foo"}

	wrapped, err := s.NextMatch(d)
	require.NoError(t, err)
	assert.False(t, wrapped)
	assert.Equal(t, Position{Line: 2, Col: 0}, d.Cursor().Position)

	wrapped, err = s.NextMatch(d)
	require.NoError(t, err)
	assert.True(t, wrapped)
	assert.Equal(t, Position{Line: 0, Col: 0}, d.Cursor().Position)

	wrapped, err = s.NextMatch(d)
	require.NoError(t, err)
	assert.False(t, wrapped)
	assert.Equal(t, Position{Line: 2, Col: 0}, d.Cursor().Position)
}

func TestNextMatch_SameLineBeforeWrapping(t *testing.T) {
	d := NewDocumentFromText("foo foo")
	s := &SearchState{Pattern: "foo"}

	wrapped, err := s.NextMatch(d)
	require.NoError(t, err)
	assert.False(t, wrapped)
	assert.Equal(t, Position{Line: 0, Col: 4}, d.Cursor().Position)
	assert.Equal(t, 3, s.MatchedLen())
}

func TestNextMatch_OnlyOccurrence(t *testing.T) {
	d := NewDocumentFromText("foo")
	s := &SearchState{Pattern: "foo"}

	_, err := s.NextMatch(d)
	assert.ErrorIs(t, err, ErrOnlyOccurrence)
	assert.True(t, IsNotFound(err))
}

func TestNextMatch_NotFound(t *testing.T) {
	d := NewDocumentFromText("nothing here")
	s := &SearchState{Pattern: "zzz"}

	_, err := s.NextMatch(d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextMatch_EmptyPattern(t *testing.T) {
	d := NewDocumentFromText("text")
	s := &SearchState{}

	_, err := s.NextMatch(d)
	assert.ErrorIs(t, err, ErrNoSearchPattern)
}

func TestNextMatch_CaseFolding(t *testing.T) {
	d := NewDocumentFromText("x\nFOO")
	s := &SearchState{Pattern: "foo"}
	_, err := s.NextMatch(d)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Col: 0}, d.Cursor().Position)

	d.GotoLine(0, 0)
	s = &SearchState{Pattern: "foo", CaseSensitive: true}
	_, err = s.NextMatch(d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextMatch_LiteralModeEscapesMetacharacters(t *testing.T) {
	d := NewDocumentFromText("price is 1.50\n1x50")
	s := &SearchState{Pattern: "1.5"}
	_, err := s.NextMatch(d)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 0, Col: 9}, d.Cursor().Position)
}

func TestNextMatch_RegexpMode(t *testing.T) {
	d := NewDocumentFromText("abc\na12")
	s := &SearchState{Pattern: `a\d+`, Regexp: true}
	_, err := s.NextMatch(d)
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Col: 0}, d.Cursor().Position)
	assert.Equal(t, 3, s.MatchedLen())
}

func TestNextMatch_Backwards(t *testing.T) {
	d := NewDocumentFromText("foo bar foo")
	s := &SearchState{Pattern: "foo", Backwards: true}

	wrapped, err := s.NextMatch(d)
	require.NoError(t, err)
	assert.True(t, wrapped)
	assert.Equal(t, Position{Line: 0, Col: 8}, d.Cursor().Position)

	wrapped, err = s.NextMatch(d)
	require.NoError(t, err)
	assert.False(t, wrapped)
	assert.Equal(t, Position{Line: 0, Col: 0}, d.Cursor().Position)
}

func TestReplaceFromCursor(t *testing.T) {
	d := NewDocumentFromText("hello world")
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 6}})
	d.ReplaceFromCursor(5, "there")
	assert.Equal(t, "hello there", d.Text())
	assert.True(t, d.Dirty())
}

func TestReplaceAll_EveryOccurrence(t *testing.T) {
	d := NewDocumentFromText("aaa")
	s := &SearchState{Pattern: "a"}

	n, err := s.ReplaceAll(d, "b", func(Position) ReplaceChoice { return ReplaceRest })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "bbb", d.Text())
}

func TestReplaceAll_TerminatesOnSelfEmbeddingReplacement(t *testing.T) {
	d := NewDocumentFromText("foo bar foo")
	s := &SearchState{Pattern: "foo"}

	n, err := s.ReplaceAll(d, "foofoo", func(Position) ReplaceChoice { return ReplaceRest })
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "foofoo bar foofoo", d.Text())
}

func TestReplaceAll_DecisionPerMatch(t *testing.T) {
	d := NewDocumentFromText("x x x x")
	s := &SearchState{Pattern: "x"}

	var asked []Position
	n, err := s.ReplaceAll(d, "y", func(p Position) ReplaceChoice {
		asked = append(asked, p)
		if len(asked) == 1 {
			return ReplaceNo
		}
		return ReplaceYes
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	// The first prompted match is the one after the cursor; the match at
	// the starting position is reached last, after the wraparound.
	assert.Equal(t, []Position{
		{Line: 0, Col: 2}, {Line: 0, Col: 4}, {Line: 0, Col: 6}, {Line: 0, Col: 0},
	}, asked)
	assert.Equal(t, "y x y y", d.Text())
}

func TestReplaceAll_CancelStops(t *testing.T) {
	d := NewDocumentFromText("x x x")
	s := &SearchState{Pattern: "x"}

	calls := 0
	n, err := s.ReplaceAll(d, "y", func(Position) ReplaceChoice {
		calls++
		if calls == 2 {
			return ReplaceCancel
		}
		return ReplaceYes
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "x y x", d.Text())
}

func TestReplaceAll_Backwards(t *testing.T) {
	d := NewDocumentFromText("aaa")
	d.EndOfLine()
	s := &SearchState{Pattern: "a", Backwards: true}

	n, err := s.ReplaceAll(d, "b", func(Position) ReplaceChoice { return ReplaceRest })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "bbb", d.Text())
}
