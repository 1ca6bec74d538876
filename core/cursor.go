package core

import "unicode"

// segmentStart returns the wrap offset of the visual sub-line containing
// the given rune offset.
func (d *Document) segmentStart(line, col int) int {
	off, ok := prevBreak(d.WrapOffsets(line), col+1)
	if !ok {
		return 0
	}
	return off
}

// segmentEnd returns the rune offset one past the visual sub-line starting
// at segStart.
func (d *Document) segmentEnd(line, segStart int) int {
	if next, ok := nextBreak(d.WrapOffsets(line), segStart); ok {
		return next
	}
	return d.LineLen(line)
}

// wantedColumn derives the sticky column for the current cursor: the
// visual column relative to the start of the cursor's sub-line.
func (d *Document) wantedColumn() int {
	line := d.lines[d.cursor.Line]
	seg := d.segmentStart(d.cursor.Line, d.cursor.Col)
	return d.mapper.Span(line, d.cursor.Col) - d.mapper.Span(line, seg)
}

// MoveLeft moves the cursor left by count runes, crossing to the end of
// the previous line at a line start. Returns ErrStartOfBuffer when the
// start of the file stops the motion.
func (d *Document) MoveLeft(count int) error {
	var err error
	for ; count > 0; count-- {
		switch {
		case d.cursor.Col > 0:
			d.cursor.Col--
		case d.cursor.Line > 0:
			d.cursor.Line--
			d.cursor.Col = d.LineLen(d.cursor.Line)
		default:
			err = ErrStartOfBuffer
			count = 0
		}
	}
	d.cursor.Wanted = d.wantedColumn()
	return err
}

// MoveRight moves the cursor right by count runes, crossing to the start
// of the next line at a line end. Returns ErrEndOfBuffer when the end of
// the file stops the motion.
func (d *Document) MoveRight(count int) error {
	var err error
	for ; count > 0; count-- {
		switch {
		case d.cursor.Col < d.LineLen(d.cursor.Line):
			d.cursor.Col++
		case d.cursor.Line < len(d.lines)-1:
			d.cursor.Line++
			d.cursor.Col = 0
		default:
			err = ErrEndOfBuffer
			count = 0
		}
	}
	d.cursor.Wanted = d.wantedColumn()
	return err
}

// placeAtWanted positions the cursor inside the sub-line of line starting
// at segStart, as close to the sticky column as the sub-line allows.
func (d *Document) placeAtWanted(line, segStart int) {
	runes := d.lines[line]
	segEnd := d.segmentEnd(line, segStart)
	target := d.mapper.Span(runes, segStart) + d.cursor.Wanted
	idx := d.mapper.CharIndex(runes, target, BiasNearest)
	if idx < segStart {
		idx = segStart
	}
	if idx > segEnd {
		idx = segEnd
	}
	d.cursor.Line = line
	d.cursor.Col = idx
}

// MoveUp moves up by count visual rows. Under wrapping, crossing a
// sub-line boundary never crosses a logical line: the cursor first climbs
// through the current line's sub-lines. The sticky column is preserved.
func (d *Document) MoveUp(count int) error {
	for ; count > 0; count-- {
		if d.wrapping {
			seg := d.segmentStart(d.cursor.Line, d.cursor.Col)
			if prev, ok := prevBreak(d.WrapOffsets(d.cursor.Line), seg); ok {
				d.placeAtWanted(d.cursor.Line, prev)
				continue
			}
			if d.cursor.Line == 0 {
				return ErrStartOfBuffer
			}
			up := d.cursor.Line - 1
			offs := d.WrapOffsets(up)
			d.placeAtWanted(up, offs[len(offs)-1])
		} else {
			if d.cursor.Line == 0 {
				return ErrStartOfBuffer
			}
			line := d.cursor.Line - 1
			d.cursor.Line = line
			d.cursor.Col = d.mapper.CharIndex(d.lines[line], d.cursor.Wanted, BiasNearest)
		}
	}
	return nil
}

// MoveDown moves down by count visual rows, the mirror of MoveUp.
func (d *Document) MoveDown(count int) error {
	for ; count > 0; count-- {
		if d.wrapping {
			seg := d.segmentStart(d.cursor.Line, d.cursor.Col)
			if next, ok := nextBreak(d.WrapOffsets(d.cursor.Line), seg); ok {
				d.placeAtWanted(d.cursor.Line, next)
				continue
			}
			if d.cursor.Line == len(d.lines)-1 {
				return ErrEndOfBuffer
			}
			d.placeAtWanted(d.cursor.Line+1, 0)
		} else {
			if d.cursor.Line == len(d.lines)-1 {
				return ErrEndOfBuffer
			}
			line := d.cursor.Line + 1
			d.cursor.Line = line
			d.cursor.Col = d.mapper.CharIndex(d.lines[line], d.cursor.Wanted, BiasNearest)
		}
	}
	return nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NextWord moves to the start of the next word.
func (d *Document) NextWord() error {
	for isWordRune(d.CurrentRune()) {
		if err := d.MoveRight(1); err != nil {
			return err
		}
	}
	for r := d.CurrentRune(); r != 0 && !isWordRune(r); r = d.CurrentRune() {
		if err := d.MoveRight(1); err != nil {
			return err
		}
	}
	return nil
}

// PrevWord moves to the start of the previous word.
func (d *Document) PrevWord() error {
	moved := true
	for isWordRune(d.CurrentRune()) && moved {
		moved = d.MoveLeft(1) == nil
	}
	for !isWordRune(d.CurrentRune()) && moved {
		moved = d.MoveLeft(1) == nil
	}
	for isWordRune(d.CurrentRune()) && moved {
		moved = d.MoveLeft(1) == nil
	}
	if !moved {
		// Stopped by the start of the buffer. A word beginning at the very
		// first rune is still a valid landing spot.
		if isWordRune(d.CurrentRune()) {
			return nil
		}
		return ErrStartOfBuffer
	}
	return d.MoveRight(1)
}

// BeginningOfLine moves to column zero of the current line.
func (d *Document) BeginningOfLine() {
	d.cursor.Col = 0
	d.cursor.Wanted = 0
}

// EndOfLine moves one past the last rune of the current line.
func (d *Document) EndOfLine() {
	d.cursor.Col = d.LineLen(d.cursor.Line)
	d.cursor.Wanted = d.wantedColumn()
}

// FirstLine moves to the start of the buffer.
func (d *Document) FirstLine() {
	d.cursor = Cursor{}
}

// LastLine moves to the start of the last line.
func (d *Document) LastLine() {
	d.cursor = Cursor{Position: Position{Line: len(d.lines) - 1}}
}

// GotoLine places the cursor at the given zero-based line and rune offset,
// both clamped to the buffer.
func (d *Document) GotoLine(line, col int) {
	if line >= len(d.lines) {
		line = len(d.lines) - 1
	}
	if line < 0 {
		line = 0
	}
	d.cursor.Line = line
	d.cursor.Col = min(max(col, 0), d.LineLen(line))
	d.cursor.Wanted = d.wantedColumn()
}
