package core

import "testing"

func TestSpan_TabFreeLineIsIdentity(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	line := []rune("plain ascii text")
	for i := 0; i <= len(line); i++ {
		if got := m.Span(line, i); got != i {
			t.Fatalf("span at %d: got %d, want %d", i, got, i)
		}
	}
}

func TestRuneSpan_TabExpandsToNextStop(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	cases := []struct {
		col  int
		want int
	}{
		{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 4}, {7, 1},
	}
	for _, c := range cases {
		if got := m.RuneSpan('\t', c.col); got != c.want {
			t.Fatalf("tab at col %d: got %d, want %d", c.col, got, c.want)
		}
	}
}

func TestSpan_TabbedLine(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	line := []rune("a\tb")
	// a=0, tab fills 1-3, b=4
	wants := []int{0, 1, 4, 5}
	for i, want := range wants {
		if got := m.Span(line, i); got != want {
			t.Fatalf("span of first %d runes: got %d, want %d", i, got, want)
		}
	}
}

func TestCharIndex_BiasAcrossTab(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	line := []rune("a\tb")
	cases := []struct {
		col  int
		bias Bias
		want int
	}{
		{2, BiasLeft, 1},
		{2, BiasRight, 2},
		{2, BiasNearest, 1}, // closer to column 1 than 4
		{3, BiasNearest, 2}, // closer to column 4 than 1
		{0, BiasRight, 0},
		{5, BiasNearest, 3},
		{99, BiasLeft, 3},
	}
	for _, c := range cases {
		if got := m.CharIndex(line, c.col, c.bias); got != c.want {
			t.Fatalf("charIndex(col=%d, bias=%v): got %d, want %d", c.col, c.bias, got, c.want)
		}
	}
}

func TestCharIndex_NearestTieFavorsLeft(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	line := []rune("ab\tc")
	// tab spans columns 2-3, boundaries at 2 and 4; column 3 is
	// equidistant and must resolve left.
	if got := m.CharIndex(line, 3, BiasNearest); got != 2 {
		t.Fatalf("midpoint tie: got %d, want 2", got)
	}
}

func TestCharIndex_RoundTripStability(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	line := []rune("x\ty\tz")
	for _, bias := range []Bias{BiasLeft, BiasRight, BiasNearest} {
		for col := 0; col <= m.Width(line)+1; col++ {
			once := m.CharIndex(line, col, bias)
			twice := m.CharIndex(line, m.Span(line, once), bias)
			if once != twice {
				t.Fatalf("bias %v col %d: first %d, second %d", bias, col, once, twice)
			}
		}
	}
}

func TestExpand_ReplacesTabsWithSpaces(t *testing.T) {
	m := CoordinateMapper{TabWidth: 4}
	if got := m.Expand([]rune("a\tb")); got != "a   b" {
		t.Fatalf("expand: got %q, want %q", got, "a   b")
	}
}
