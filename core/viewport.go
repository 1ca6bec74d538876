package core

// Viewport tracks the first displayed visual row and the horizontal scroll
// offset, independently of the cursor. After every operation the session
// calls EnsureVisible so the cursor stays inside the window.
type Viewport struct {
	FirstLine   int // logical line of the top visual row
	FirstOffset int // wrap offset within FirstLine of the top visual row
	FirstColumn int // first displayed visual column, non-wrap mode only
	Smooth      bool
}

// Top resets the viewport to the start of the buffer.
func (v *Viewport) Top() {
	v.FirstLine = 0
	v.FirstOffset = 0
	v.FirstColumn = 0
}

// MoveDisplayDown scrolls the window down by count visual rows, stopping
// when the bottom of the window reaches the end of the buffer.
func (v *Viewport) MoveDisplayDown(d *Document, height, count int) {
	for ; count > 0; count-- {
		lastLine := v.FirstLine
		if !d.Wrapping() {
			lastLine += height - 1
		} else {
			off := v.FirstOffset
			for l := 0; l < height-1; l++ {
				if next, ok := nextBreak(d.WrapOffsets(lastLine), off); ok {
					off = next
				} else {
					off = 0
					lastLine++
				}
			}
		}
		if lastLine >= d.LineCount() {
			return
		}
		if next, ok := nextBreak(d.WrapOffsets(v.FirstLine), v.FirstOffset); ok {
			v.FirstOffset = next
		} else {
			v.FirstOffset = 0
			v.FirstLine++
		}
	}
}

// MoveDisplayUp scrolls the window up by count visual rows.
func (v *Viewport) MoveDisplayUp(d *Document, count int) {
	for ; count > 0; count-- {
		if v.FirstOffset > 0 {
			v.FirstOffset, _ = prevBreak(d.WrapOffsets(v.FirstLine), v.FirstOffset)
		} else if v.FirstLine > 0 {
			v.FirstLine--
			offs := d.WrapOffsets(v.FirstLine)
			v.FirstOffset = offs[len(offs)-1]
		} else {
			return
		}
	}
}

// cursorRow returns the visual row of the cursor relative to the top of
// the window, negative when the cursor is above it.
func (v *Viewport) cursorRow(d *Document) int {
	cur := d.Cursor()
	return v.rowOf(d, cur.Line, d.segmentStart(cur.Line, cur.Col))
}

// rowOf returns the visual row of the sub-line (line, seg) relative to the
// top of the window, negative when it lies above it.
func (v *Viewport) rowOf(d *Document, line, seg int) int {
	if line < v.FirstLine || (line == v.FirstLine && seg < v.FirstOffset) {
		row := 0
		for l := line; l <= v.FirstLine; l++ {
			from, to := 0, len(d.WrapOffsets(l))
			if l == line {
				from = segIndex(d.WrapOffsets(l), seg)
			}
			if l == v.FirstLine {
				to = segIndex(d.WrapOffsets(l), v.FirstOffset)
			}
			row += to - from
		}
		return -row
	}
	row := 0
	for l := v.FirstLine; l <= line; l++ {
		from, to := 0, len(d.WrapOffsets(l))
		if l == v.FirstLine {
			from = segIndex(d.WrapOffsets(l), v.FirstOffset)
		}
		if l == line {
			to = segIndex(d.WrapOffsets(l), seg)
		}
		row += to - from
	}
	return row
}

func segIndex(offsets []int, off int) int {
	for i, o := range offsets {
		if o == off {
			return i
		}
	}
	return 0
}

// CursorScreen returns the cursor's screen coordinates relative to the
// window origin. The column accounts for tab expansion and, in non-wrap
// mode, the horizontal scroll offset.
func (v *Viewport) CursorScreen(d *Document) (row, col int) {
	return v.ScreenPosition(d, d.Cursor().Position)
}

// ScreenPosition returns the screen cell of a buffer position relative to
// the window origin, with the same column rules as CursorScreen.
func (v *Viewport) ScreenPosition(d *Document, p Position) (row, col int) {
	line := d.Line(p.Line)
	seg := d.segmentStart(p.Line, p.Col)
	row = v.rowOf(d, p.Line, seg)
	if d.Wrapping() {
		col = d.Mapper().Span(line, p.Col) - d.Mapper().Span(line, seg)
	} else {
		col = d.Mapper().Span(line, p.Col) - v.FirstColumn
	}
	return row, col
}

// PositionAt maps a screen cell back to the buffer position rendered there,
// walking wrap sub-lines from the window origin and resolving the column
// through the tab-aware mapper. ok is false for rows past the buffer end.
func (v *Viewport) PositionAt(d *Document, row, col int) (Position, bool) {
	line := v.FirstLine
	if !d.Wrapping() {
		line += row
		if line >= d.LineCount() {
			return Position{}, false
		}
		idx := d.Mapper().CharIndex(d.Line(line), v.FirstColumn+col, BiasLeft)
		return Position{Line: line, Col: idx}, true
	}
	off := v.FirstOffset
	for ; row > 0; row-- {
		if next, ok := nextBreak(d.WrapOffsets(line), off); ok {
			off = next
		} else if line < d.LineCount()-1 {
			line++
			off = 0
		} else {
			return Position{}, false
		}
	}
	runes := d.Line(line)
	idx := d.Mapper().CharIndex(runes, d.Mapper().Span(runes, off)+col, BiasLeft)
	return Position{Line: line, Col: min(idx, d.segmentEnd(line, off))}, true
}

// EnsureVisible scrolls until the cursor lies inside a window of the given
// text size: one row at a time when smooth scrolling is on, half a screen
// otherwise. Horizontal scrolling shifts the first displayed column in
// blocks so the cursor stays a few columns from either edge.
func (v *Viewport) EnsureVisible(d *Document, width, height int) {
	if height < 1 {
		height = 1
	}
	step := height / 2
	if v.Smooth || step < 1 {
		step = 1
	}
	for v.cursorRow(d) < 0 {
		v.MoveDisplayUp(d, step)
	}
	for v.cursorRow(d) >= height {
		v.MoveDisplayDown(d, height, step)
	}

	if d.Wrapping() {
		v.FirstColumn = 0
		return
	}
	cur := d.Cursor()
	vis := d.Mapper().Span(d.Line(cur.Line), cur.Col)
	if vis-v.FirstColumn+1 > width {
		v.FirstColumn = max(0, vis-6)
	} else if v.FirstColumn > 0 && vis < v.FirstColumn+5 {
		v.FirstColumn = max(0, v.FirstColumn-width+5)
	}
	if vis < v.FirstColumn {
		v.FirstColumn = max(0, vis-6)
	}
}

// VisibleRows renders the window as plain text rows, tabs expanded: each
// visual sub-line from the viewport origin, height rows in total. Rows past
// the end of the buffer are empty. In non-wrap mode each row is the line
// clipped to [FirstColumn, FirstColumn+width).
func (v *Viewport) VisibleRows(d *Document, width, height int) []string {
	rows := make([]string, 0, height)
	line := v.FirstLine
	off := v.FirstOffset
	m := d.Mapper()
	for len(rows) < height {
		if line >= d.LineCount() {
			rows = append(rows, "")
			continue
		}
		runes := d.Line(line)
		if d.Wrapping() {
			end := d.segmentEnd(line, off)
			rows = append(rows, clipColumns(m, runes, m.Span(runes, off), m.Span(runes, off)+width, off, end))
			if next, ok := nextBreak(d.WrapOffsets(line), off); ok {
				off = next
			} else {
				line++
				off = 0
			}
		} else {
			rows = append(rows, clipColumns(m, runes, v.FirstColumn, v.FirstColumn+width, 0, len(runes)))
			line++
		}
	}
	return rows
}

// clipColumns renders runes[from:to] restricted to the visual column range
// [startCol, endCol), expanding tabs. A wide rune or tab straddling the
// left edge is padded with spaces.
func clipColumns(m CoordinateMapper, runes []rune, startCol, endCol, from, to int) string {
	out := make([]rune, 0, endCol-startCol)
	col := m.Span(runes, from)
	for i := from; i < to && col < endCol; i++ {
		w := m.RuneSpan(runes[i], col)
		switch {
		case col+w <= startCol:
			// Entirely left of the window.
		case runes[i] == '\t':
			for c := max(col, startCol); c < min(col+w, endCol); c++ {
				out = append(out, ' ')
			}
		case col < startCol || col+w > endCol:
			for c := max(col, startCol); c < min(col+w, endCol); c++ {
				out = append(out, ' ')
			}
		default:
			out = append(out, runes[i])
		}
		col += w
	}
	return string(out)
}
