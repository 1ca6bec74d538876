package core

// CutBuffer holds the text fragments captured by the last cut or copy.
// Fragments are logical lines except for a possibly partial first and
// last. Line-wise captures (whole-line cuts) carry an implied trailing
// line break; mark-region captures do not. The session decides when a new
// cut replaces the contents (append chaining: consecutive cuts accumulate,
// any intervening action starts over).
type CutBuffer struct {
	fragments []string
	lineWise  bool
}

// Reset discards all fragments.
func (cb *CutBuffer) Reset() {
	cb.fragments = nil
	cb.lineWise = false
}

// IsEmpty reports whether the buffer holds no fragments.
func (cb *CutBuffer) IsEmpty() bool { return len(cb.fragments) == 0 }

// Fragments returns the captured fragments in order.
func (cb *CutBuffer) Fragments() []string {
	out := make([]string, len(cb.fragments))
	copy(out, cb.fragments)
	return out
}

// Text returns the exact text Uncut reinserts.
func (cb *CutBuffer) Text() string {
	out := ""
	for i, f := range cb.fragments {
		if i > 0 {
			out += "\n"
		}
		out += f
	}
	if cb.lineWise {
		out += "\n"
	}
	return out
}

func (cb *CutBuffer) add(frag string, lineWise bool) {
	cb.fragments = append(cb.fragments, frag)
	cb.lineWise = lineWise
}

// ToggleMark sets the mark at the cursor, or clears it when already set.
// Returns whether the mark is now set.
func (d *Document) ToggleMark() bool {
	d.markSet = !d.markSet
	if d.markSet {
		d.mark = d.cursor.Position
	}
	return d.markSet
}

// MarkSet reports whether a mark is active.
func (d *Document) MarkSet() bool { return d.markSet }

// Selection returns the mark region ordered so that start <= end by
// (line, offset). ok is false when no mark is set.
func (d *Document) Selection() (start, end Position, ok bool) {
	if !d.markSet {
		return Position{}, Position{}, false
	}
	if d.mark.Before(d.cursor.Position) {
		return d.mark, d.cursor.Position, true
	}
	return d.cursor.Position, d.mark, true
}

func (d *Document) captureRegion(cb *CutBuffer, s, e Position) {
	if s.Line == e.Line {
		cb.add(string(d.lines[s.Line][s.Col:e.Col]), false)
		return
	}
	cb.add(string(d.lines[s.Line][s.Col:]), false)
	for i := s.Line + 1; i < e.Line; i++ {
		cb.add(string(d.lines[i]), false)
	}
	cb.add(string(d.lines[e.Line][:e.Col]), false)
}

// Copy captures text into cb without mutating the document: the mark
// region when a mark is set, otherwise the whole current line (advancing
// the cursor one line, nano-style).
func (d *Document) Copy(cb *CutBuffer) {
	if s, e, ok := d.Selection(); ok {
		d.captureRegion(cb, s, e)
		d.markSet = false
		return
	}
	cb.add(string(d.lines[d.cursor.Line]), true)
	_ = d.MoveDown(1)
}

// CutToEnd cuts from the cursor to the end of the current line into cb.
func (d *Document) CutToEnd(cb *CutBuffer) {
	line := d.lines[d.cursor.Line]
	cb.add(string(line[d.cursor.Col:]), false)
	d.lines[d.cursor.Line] = line[:d.cursor.Col:d.cursor.Col]
	d.computeLineOffsets(d.cursor.Line)
	d.cursor.Wanted = d.wantedColumn()
	d.dirty = true
}

// Cut removes text into cb: the mark region when a mark is set, otherwise
// the whole current line. The document always keeps at least one line.
func (d *Document) Cut(cb *CutBuffer) {
	if s, e, ok := d.Selection(); ok {
		d.captureRegion(cb, s, e)
		if s.Line == e.Line {
			line := d.lines[s.Line]
			d.lines[s.Line] = append(line[:s.Col:s.Col], line[e.Col:]...)
			d.computeLineOffsets(s.Line)
		} else {
			head := d.lines[s.Line][:s.Col:s.Col]
			tail := d.lines[e.Line][e.Col:]
			d.lines[s.Line] = append(head, tail...)
			for i := e.Line; i > s.Line; i-- {
				d.removeLine(i)
			}
			d.computeAllOffsets()
		}
		d.markSet = false
		d.SetCursor(Cursor{Position: s})
		d.cursor.Wanted = d.wantedColumn()
		d.dirty = true
		return
	}

	// Whole-line cut. Removing the only line leaves a single empty one.
	cb.add(string(d.lines[d.cursor.Line]), true)
	if len(d.lines) > 1 {
		d.removeLine(d.cursor.Line)
		if d.cursor.Line > len(d.lines)-1 {
			d.cursor.Line--
		}
	} else {
		d.lines[0] = []rune{}
		d.computeLineOffsets(0)
	}
	d.cursor.Col = 0
	d.cursor.Wanted = 0
	d.dirty = true
}

// Uncut reinserts the cut buffer verbatim at the cursor. Cutting and
// uncutting at the same position restores the buffer exactly, including
// multi-line mark-based cuts.
func (d *Document) Uncut(cb *CutBuffer) {
	if cb.IsEmpty() {
		return
	}
	text := cb.Text()
	if cb.lineWise && d.cursor.Col == 0 {
		// Whole lines land above the current line, cursor stays on it.
		at := d.cursor.Line
		d.Insert(text)
		d.SetCursor(Cursor{Position: Position{Line: at + len(cb.fragments)}})
		return
	}
	d.Insert(text)
}

// MatchBrackets is the bracket pair configuration: each opening bracket in
// the first half pairs with the closing bracket half the string away.
const MatchBrackets = "(<[{)>]}"

// Matching jumps to the bracket matching the one under the cursor,
// tracking nesting depth. Returns ErrNotABracket when the cursor is not on
// a configured bracket and ErrNoMatchingBracket when the scan exhausts the
// buffer.
func (d *Document) Matching() error {
	opening := d.CurrentRune()
	idx := -1
	for i, b := range MatchBrackets {
		if b == opening {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotABracket
	}
	half := len(MatchBrackets) / 2
	dir := 1
	if idx >= half {
		dir = -1
	}
	closing := rune(MatchBrackets[(idx+half)%len(MatchBrackets)])

	lvl := 1
	cur := d.cursor.Line
	pos := d.cursor.Col
	for {
		switch {
		case pos+dir >= 0 && pos+dir < d.LineLen(cur):
			pos += dir
		case cur+dir >= 0 && cur+dir < len(d.lines):
			cur += dir
			if dir > 0 {
				pos = 0
			} else {
				pos = d.LineLen(cur) - 1
			}
			if pos < 0 || pos >= d.LineLen(cur) {
				continue // skip empty lines
			}
		default:
			return ErrNoMatchingBracket
		}
		switch d.lines[cur][pos] {
		case opening:
			lvl++
		case closing:
			lvl--
			if lvl == 0 {
				d.cursor.Line = cur
				d.cursor.Col = pos
				d.cursor.Wanted = d.wantedColumn()
				return nil
			}
		}
	}
}
