package core

import "github.com/mattn/go-runewidth"

// Bias selects which character index wins when a visual column falls inside
// a tab's expansion. Moving left and moving right across a tab must land on
// different character indices even though the visual columns are equal.
type Bias int

const (
	// BiasNearest picks the column-closer boundary; ties favor the left.
	BiasNearest Bias = iota
	// BiasLeft picks the index before the tab.
	BiasLeft
	// BiasRight picks the index after the tab.
	BiasRight
)

// CoordinateMapper converts between character indices and visual columns
// for a single line under a fixed tab width.
type CoordinateMapper struct {
	TabWidth int
}

// RuneSpan returns the visual width of r when rendered starting at col.
// Tabs expand to the next multiple of the tab width; every other rune
// contributes its display width, never less than 1.
func (m CoordinateMapper) RuneSpan(r rune, col int) int {
	if r == '\t' {
		tw := m.TabWidth
		if tw <= 0 {
			tw = 1
		}
		return tw - col%tw
	}
	if w := runewidth.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// Span returns the visual width of the first n runes of line.
func (m CoordinateMapper) Span(line []rune, n int) int {
	if n > len(line) {
		n = len(line)
	}
	col := 0
	for i := 0; i < n; i++ {
		col += m.RuneSpan(line[i], col)
	}
	return col
}

// Width returns the visual width of the whole line.
func (m CoordinateMapper) Width(line []rune) int {
	return m.Span(line, len(line))
}

// CharIndex resolves the character index for a target visual column.
// The result is always clamped to [0, len(line)].
func (m CoordinateMapper) CharIndex(line []rune, col int, bias Bias) int {
	if col <= 0 {
		return 0
	}
	out := len(line)
	ldiff := 0
	dp := 0
	for i := 0; i <= len(line); i++ {
		switch bias {
		case BiasLeft:
			if dp <= col {
				out = i
			} else {
				return out
			}
		case BiasRight:
			if dp >= col {
				return i
			}
		case BiasNearest:
			if dp <= col {
				ldiff = col - dp
				out = i
			} else {
				if dp-col < ldiff {
					out = i
				}
				return out
			}
		}
		if i < len(line) {
			dp += m.RuneSpan(line[i], dp)
		}
	}
	return out
}

// Expand renders line with tabs replaced by spaces up to the next tab stop.
func (m CoordinateMapper) Expand(line []rune) string {
	out := make([]rune, 0, len(line))
	col := 0
	for _, r := range line {
		w := m.RuneSpan(r, col)
		if r == '\t' {
			for i := 0; i < w; i++ {
				out = append(out, ' ')
			}
		} else {
			out = append(out, r)
		}
		col += w
	}
	return string(out)
}
