package core

import (
	"math"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Box is a floating rectangle drawn over already-rendered rows. It spans
// screen columns [X0, X1) and rows [Y0, Y1], borders included. The content
// area holds Y1-Y0-1 rows; longer line lists scroll, with wraparound
// up/down selection tracked independently of the scroll window.
type Box struct {
	X0, Y0, X1, Y1 int

	lines     []string
	selected  int
	viewStart int
	height    int
}

// NewBox creates a box with the given corner coordinates.
func NewBox(x0, y0, x1, y1 int) *Box {
	return &Box{X0: x0, Y0: y0, X1: x1, Y1: y1, height: max(1, y1-y0-1)}
}

// SetLines sets the content lines; the view resets to the top.
func (b *Box) SetLines(lines []string) {
	b.lines = lines
	b.selected = 0
	b.viewStart = 0
}

// Selected returns the index of the selected line in the full list.
func (b *Box) Selected() int { return b.selected }

// Scrollable reports whether the content exceeds the box height.
func (b *Box) Scrollable() bool { return b.height < len(b.lines) }

func (b *Box) clampView() {
	if b.selected < b.viewStart {
		b.viewStart = b.selected
	}
	if b.selected > b.viewStart+b.height-1 {
		b.viewStart = b.selected - b.height + 1
	}
}

// Down moves the selection down one line, wrapping to the top past the
// last line and scrolling the view window as needed.
func (b *Box) Down() {
	if len(b.lines) == 0 {
		return
	}
	b.selected = (b.selected + 1) % len(b.lines)
	b.clampView()
}

// Up moves the selection up one line, wrapping to the bottom.
func (b *Box) Up() {
	if len(b.lines) == 0 {
		return
	}
	b.selected = ((b.selected-1)%len(b.lines) + len(b.lines)) % len(b.lines)
	b.clampView()
}

// SelectedInView returns the selected row relative to the scroll window.
func (b *Box) SelectedInView() int { return b.selected - b.viewStart }

// Draw composites the box onto rows in place, clipped to cols screen
// columns. Rows the box does not touch are left untouched.
func (b *Box) Draw(rows []string, cols int) {
	if len(rows) == 0 || b.Y0 >= len(rows) || b.Y1 >= len(rows) {
		return
	}
	width := max(3, b.X1-b.X0)

	top := "┌" + strings.Repeat("─", width-2) + "┐"
	side := "│" + strings.Repeat(" ", width-2) + "│"
	bottom := "└" + strings.Repeat("─", width-2) + "┘"

	if b.Y0 >= 0 {
		rows[b.Y0] = spliceColumns(rows[b.Y0], b.X0, top, cols)
	}
	for y := max(b.Y0+1, 0); y < b.Y1 && y < len(rows); y++ {
		rows[y] = spliceColumns(rows[y], b.X0, side, cols)
	}
	if b.Y1 >= 0 && b.Y1 < len(rows) {
		rows[b.Y1] = spliceColumns(rows[b.Y1], b.X0, bottom, cols)
	}

	inner := width - 2
	show := min(len(b.lines)-b.viewStart, b.height)
	for i := 0; i < show; i++ {
		y := b.Y0 + 1 + i
		if y >= len(rows) {
			break
		}
		content := runewidth.Truncate(b.lines[b.viewStart+i], inner, "")
		content += strings.Repeat(" ", inner-runewidth.StringWidth(content))
		rows[y] = spliceColumns(rows[y], b.X0+1, content, cols)
	}
}

// spliceColumns overwrites row starting at visual column x with content,
// padding with spaces when the row is shorter than x and clipping both at
// cols.
func spliceColumns(row string, x int, content string, cols int) string {
	if x >= cols {
		return row
	}
	content = runewidth.Truncate(content, cols-x, "")
	cw := runewidth.StringWidth(content)

	var out strings.Builder
	col := 0
	var tail string
	for i, r := range row {
		w := max(1, runewidth.RuneWidth(r))
		if col+w > x {
			// remainder of the row, minus the overwritten span
			rest := row[i:]
			skip := x + cw - col
			for j, rr := range rest {
				if skip <= 0 {
					tail = rest[j:]
					break
				}
				skip -= max(1, runewidth.RuneWidth(rr))
			}
			break
		}
		out.WriteRune(r)
		col += w
	}
	for ; col < x; col++ {
		out.WriteString(" ")
	}
	out.WriteString(content)
	out.WriteString(tail)
	return out.String()
}

// AdjustLines rewraps lines longer than width, preferring to break before
// a word rather than inside it. widest is the longest content width; when
// it already fits, lines are returned unchanged.
func AdjustLines(lines []string, widest, width int) []string {
	if widest <= width || width <= 0 {
		return lines
	}
	var out []string
	for _, line := range lines {
		runes := []rune(line)
		if len(runes) < width {
			out = append(out, line)
			continue
		}
		start := 0
		for start < len(runes) {
			step := min(start+width, len(runes))
			end := step
			if end-start >= width {
				for end > start && !unicode.IsSpace(runes[end-1]) {
					end--
				}
			}
			if end == start {
				end = step // no space found, hard cut
			}
			out = append(out, string(runes[start:end]))
			start = end
		}
	}
	return out
}

func maxLineWidth(lines []string) int {
	w := 10
	for _, l := range lines {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	return w
}

// BuildSuggestionBox places a scrollable suggestion list near the cursor:
// anchored at the cursor column, directly below the cursor row when enough
// rows remain, otherwise flipped above, shrinking to fit; nil when neither
// side can hold at least one content row.
func BuildSuggestionBox(suggestions []string, cursorRow, cursorCol, rows, cols int) *Box {
	if len(suggestions) == 0 {
		return nil
	}
	x0 := max(0, cursorCol)
	need := maxLineWidth(suggestions) + 2
	maxW := int(math.Round(float64(cols-x0) * 0.60))
	x1 := min(min(x0+need, x0+maxW), cols-1)

	maxHeight := rows - 1
	visible := max(2, min(10, maxHeight/3))
	required := min(len(suggestions), visible) + 2

	y0 := cursorRow + 1
	below := maxHeight - y0
	displayBelow := true
	if below < required {
		above := cursorRow
		if above > below || below < 3 {
			displayBelow = false
			y0 = max(0, cursorRow-required-1)
			if cursorRow-required-1 < 0 {
				required = max(3, cursorRow-1)
				y0 = 0
			}
		} else {
			required = max(3, below)
		}
	}
	var y1 int
	if displayBelow {
		y1 = min(maxHeight, y0+required)
	} else {
		y1 = cursorRow - 1
	}
	if y1 <= y0 || x1 <= x0 {
		return nil
	}
	if x1-x0 < 4 {
		x1 = min(x0+4, cols-1)
	}
	b := NewBox(x0, y0, x1, y1)
	b.SetLines(suggestions)
	return b
}

// BuildDocumentationBox places the documentation of the selected
// suggestion to the right of its box, top-aligned with it, using 60% of
// the remaining screen width; nil when no side room or row room is left.
func BuildDocumentationBox(sbox *Box, doc []string, rows, cols int) *Box {
	if sbox == nil || len(doc) == 0 || rows == 0 {
		return nil
	}
	need := maxLineWidth(doc) + 2
	x0 := max(1, sbox.X1)
	maxW := int(math.Round(float64(cols-x0) * 0.60))
	x1 := min(need+x0, x0+maxW)
	if x1 <= x0 {
		return nil
	}
	doc = AdjustLines(doc, need-2, x1-x0-2)

	y0 := sbox.Y0
	y1 := y0 + len(doc) + 2
	if y1 >= rows {
		y1 = rows - 1
		if y1-y0 < 3 {
			return nil
		}
	}
	if y1 <= y0 {
		return nil
	}
	b := NewBox(x0, y0, x1, y1)
	b.SetLines(doc)
	return b
}

// BuildTooltipBox places a one-message tooltip anchored below the given
// screen position, flipping above when the bottom rows are exhausted; nil
// when it cannot fit either way.
func BuildTooltipBox(message string, anchorRow, anchorCol, rows, cols int) *Box {
	if message == "" {
		return nil
	}
	x0 := anchorCol
	need := runewidth.StringWidth(message) + 2
	maxW := int(math.Round(float64(cols-x0) * 0.60))
	x1 := min(need+x0, x0+maxW)
	if x1 <= x0 {
		return nil
	}
	lines := AdjustLines([]string{message}, need-2, x1-x0-2)

	y0 := anchorRow + 1
	y1 := y0 + len(lines) + 1
	if y1 >= rows {
		y0 = anchorRow - len(lines) - 2
		y1 = y0 + len(lines) + 1
		if y0 < 0 {
			return nil
		}
	}
	b := NewBox(x0, y0, x1, y1)
	b.SetLines(lines)
	return b
}
