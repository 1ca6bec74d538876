package core

import (
	"strings"
	"testing"
)

func longDocument(lines int) *Document {
	parts := make([]string, lines)
	for i := range parts {
		parts[i] = "line " + strings.Repeat("x", i%7)
	}
	d := NewDocumentFromText(strings.Join(parts, "\n"))
	d.SetLayout(80, 4, false, false)
	return d
}

func TestEnsureVisible_JumpyScrollsHalfScreens(t *testing.T) {
	d := longDocument(100)
	d.SetCursor(Cursor{Position: Position{Line: 50}})

	var v Viewport
	v.EnsureVisible(d, 80, 10)

	if v.FirstLine != 45 {
		t.Fatalf("first line: got %d, want 45", v.FirstLine)
	}
	if row, _ := v.CursorScreen(d); row != 5 {
		t.Fatalf("cursor row: got %d, want 5", row)
	}
}

func TestEnsureVisible_SmoothScrollsByOne(t *testing.T) {
	d := longDocument(100)
	d.SetCursor(Cursor{Position: Position{Line: 50}})

	v := Viewport{Smooth: true}
	v.EnsureVisible(d, 80, 10)

	if v.FirstLine != 41 {
		t.Fatalf("first line: got %d, want 41", v.FirstLine)
	}
}

func TestEnsureVisible_ScrollsBackUp(t *testing.T) {
	d := longDocument(100)
	v := Viewport{FirstLine: 60}

	d.SetCursor(Cursor{Position: Position{Line: 50}})
	v.EnsureVisible(d, 80, 10)

	if v.FirstLine > 50 {
		t.Fatalf("first line: got %d, want <= 50", v.FirstLine)
	}
	if row, _ := v.CursorScreen(d); row < 0 || row >= 10 {
		t.Fatalf("cursor row off screen: %d", row)
	}
}

func TestEnsureVisible_HorizontalBlockScroll(t *testing.T) {
	d := NewDocumentFromText(strings.Repeat("m", 60))
	d.SetLayout(80, 4, false, false)
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 50}})

	var v Viewport
	v.EnsureVisible(d, 20, 10)

	if v.FirstColumn != 44 {
		t.Fatalf("first column: got %d, want 44", v.FirstColumn)
	}
	if _, col := v.CursorScreen(d); col != 6 {
		t.Fatalf("cursor column: got %d, want 6", col)
	}

	// Moving back left shifts the window a block, not one column.
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 40}})
	v.EnsureVisible(d, 20, 10)
	if v.FirstColumn != 29 {
		t.Fatalf("first column after left move: got %d, want 29", v.FirstColumn)
	}
}

func TestEnsureVisible_WrappingResetsFirstColumn(t *testing.T) {
	d := NewDocumentFromText("hello world")
	d.SetLayout(6, 4, true, true)

	v := Viewport{FirstColumn: 10}
	v.EnsureVisible(d, 6, 10)

	if v.FirstColumn != 0 {
		t.Fatalf("first column: got %d, want 0", v.FirstColumn)
	}
}

func TestMoveDisplayDown_StopsAtBufferEnd(t *testing.T) {
	d := longDocument(3)
	var v Viewport
	v.MoveDisplayDown(d, 10, 5)
	if v.FirstLine != 0 {
		t.Fatalf("first line: got %d, want 0", v.FirstLine)
	}
}

func TestMoveDisplay_WalksWrappedSubLines(t *testing.T) {
	d := NewDocumentFromText("hello world\nnext")
	d.SetLayout(6, 4, true, true)

	var v Viewport
	v.MoveDisplayDown(d, 2, 1)
	if v.FirstLine != 0 || v.FirstOffset != 6 {
		t.Fatalf("after one row: line %d offset %d, want 0/6", v.FirstLine, v.FirstOffset)
	}
	v.MoveDisplayDown(d, 2, 1)
	if v.FirstLine != 1 || v.FirstOffset != 0 {
		t.Fatalf("after two rows: line %d offset %d, want 1/0", v.FirstLine, v.FirstOffset)
	}
	v.MoveDisplayDown(d, 2, 1)
	if v.FirstLine != 1 {
		t.Fatalf("bottom reached: line %d, want 1", v.FirstLine)
	}

	v.MoveDisplayUp(d, 1)
	if v.FirstLine != 0 || v.FirstOffset != 6 {
		t.Fatalf("after up: line %d offset %d, want 0/6", v.FirstLine, v.FirstOffset)
	}
	v.MoveDisplayUp(d, 5)
	if v.FirstLine != 0 || v.FirstOffset != 0 {
		t.Fatalf("top reached: line %d offset %d, want 0/0", v.FirstLine, v.FirstOffset)
	}
}

func TestCursorScreen_WrappedSubLine(t *testing.T) {
	d := NewDocumentFromText("hello world")
	d.SetLayout(6, 4, true, true)
	d.SetCursor(Cursor{Position: Position{Line: 0, Col: 8}})

	var v Viewport
	row, col := v.CursorScreen(d)
	if row != 1 || col != 2 {
		t.Fatalf("cursor screen: got %d/%d, want 1/2", row, col)
	}
}

func TestVisibleRows_Wrapped(t *testing.T) {
	d := NewDocumentFromText("hello world")
	d.SetLayout(6, 4, true, true)

	var v Viewport
	rows := v.VisibleRows(d, 6, 3)
	want := []string{"hello ", "world", ""}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestVisibleRows_HorizontalClip(t *testing.T) {
	d := NewDocumentFromText("abcdefg")
	d.SetLayout(80, 4, false, false)

	v := Viewport{FirstColumn: 2}
	rows := v.VisibleRows(d, 3, 1)
	if rows[0] != "cde" {
		t.Fatalf("clipped row: got %q, want %q", rows[0], "cde")
	}
}

func TestPositionAt_WrappedRows(t *testing.T) {
	d := NewDocumentFromText("hello world\nnext")
	d.SetLayout(6, 4, true, true)

	var v Viewport
	cases := []struct {
		row, col int
		want     Position
	}{
		{0, 2, Position{Line: 0, Col: 2}},
		{1, 2, Position{Line: 0, Col: 8}},
		{2, 0, Position{Line: 1, Col: 0}},
	}
	for _, c := range cases {
		got, ok := v.PositionAt(d, c.row, c.col)
		if !ok || got != c.want {
			t.Fatalf("cell %d/%d: got %v ok=%v, want %v", c.row, c.col, got, ok, c.want)
		}
	}

	if _, ok := v.PositionAt(d, 3, 0); ok {
		t.Fatal("row past buffer end resolved")
	}
}

func TestPositionAt_TabExpansionAndFirstColumn(t *testing.T) {
	d := NewDocumentFromText("a\tb")
	d.SetLayout(80, 4, false, false)

	var v Viewport
	if got, ok := v.PositionAt(d, 0, 2); !ok || got != (Position{Line: 0, Col: 1}) {
		t.Fatalf("inside tab: got %v ok=%v, want 0/1", got, ok)
	}

	v.FirstColumn = 2
	if got, ok := v.PositionAt(d, 0, 2); !ok || got != (Position{Line: 0, Col: 2}) {
		t.Fatalf("scrolled: got %v ok=%v, want 0/2", got, ok)
	}

	if _, ok := v.PositionAt(d, 5, 0); ok {
		t.Fatal("row past buffer end resolved")
	}
}

func TestVisibleRows_TabStraddlingLeftEdge(t *testing.T) {
	d := NewDocumentFromText("a\tb")
	d.SetLayout(80, 4, false, false)

	v := Viewport{FirstColumn: 2}
	rows := v.VisibleRows(d, 4, 1)
	if rows[0] != "  b" {
		t.Fatalf("straddled tab: got %q, want %q", rows[0], "  b")
	}
}
