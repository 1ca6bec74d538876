package core

import (
	"strings"
)

// Format is the end-of-line convention used when writing a document out.
type Format int

const (
	FormatUnix Format = iota // "\n"
	FormatDos                // "\r\n"
	FormatMac                // "\r"
)

// Separator returns the line terminator bytes for the format.
func (f Format) Separator() string {
	switch f {
	case FormatDos:
		return "\r\n"
	case FormatMac:
		return "\r"
	default:
		return "\n"
	}
}

// Position is a location in a document: a logical line and a rune offset
// within it. The visual column is always derived, never stored.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p orders strictly before o by (line, offset).
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Col < o.Col)
}

// Cursor is the editing position plus the sticky visual column used by
// vertical motion: repeated up/down through short lines restores the
// original column once a long enough line is reached again.
type Cursor struct {
	Position
	Wanted int
}

// Document owns a sequence of lines (no embedded terminators), the cursor,
// the optional mark and the derived per-line wrap offsets.
type Document struct {
	lines   [][]rune
	offsets [][]int

	cursor  Cursor
	markSet bool
	mark    Position

	path   string
	format Format
	dirty  bool

	width    int // text width available for wrapping
	wrapping bool
	atBlanks bool

	tabsToSpaces bool
	autoIndent   bool

	mapper CoordinateMapper
}

// NewDocument creates an empty document: a single empty line, unix format.
func NewDocument() *Document {
	d := &Document{
		lines:  [][]rune{{}},
		format: FormatUnix,
		width:  80,
		mapper: CoordinateMapper{TabWidth: 4},
	}
	d.computeAllOffsets()
	return d
}

// NewDocumentFromText creates a document from text, normalizing CRLF and
// CR line endings to LF. Empty input yields a single empty line.
func NewDocumentFromText(text string) *Document {
	d := NewDocument()
	d.setText(text)
	return d
}

func normalizeBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func (d *Document) setText(text string) {
	parts := strings.Split(normalizeBreaks(text), "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1] // do not eat content, only a trailing newline
	}
	d.lines = make([][]rune, len(parts))
	for i, p := range parts {
		d.lines[i] = []rune(p)
	}
	if len(d.lines) == 0 {
		d.lines = [][]rune{{}}
	}
	d.cursor = Cursor{}
	d.markSet = false
	d.computeAllOffsets()
}

// Path returns the file name backing the document, or "" for a new buffer.
func (d *Document) Path() string { return d.path }

// SetPath renames the backing file of the document.
func (d *Document) SetPath(path string) { d.path = path }

// Title is the name shown in the header: the path or "New Buffer".
func (d *Document) Title() string {
	if d.path == "" {
		return "New Buffer"
	}
	return "File: " + d.path
}

// Format returns the end-of-line write format.
func (d *Document) Format() Format { return d.format }

// SetFormat sets the end-of-line write format.
func (d *Document) SetFormat(f Format) { d.format = f }

// Dirty reports whether the document has unsaved modifications.
func (d *Document) Dirty() bool { return d.dirty }

func (d *Document) setClean() { d.dirty = false }

// Mapper returns the tab-aware coordinate mapper for this document.
func (d *Document) Mapper() CoordinateMapper { return d.mapper }

// Wrapping reports whether soft wrap is enabled.
func (d *Document) Wrapping() bool { return d.wrapping }

// Width returns the text width used for wrapping.
func (d *Document) Width() int { return d.width }

// SetLayout updates the geometry and wrap flags, recomputing every line's
// wrap offsets when any of them changed.
func (d *Document) SetLayout(width, tabWidth int, wrapping, atBlanks bool) {
	if width < 2 {
		width = 2
	}
	if tabWidth < 1 {
		tabWidth = 1
	}
	changed := d.width != width ||
		d.mapper.TabWidth != tabWidth ||
		d.wrapping != wrapping ||
		d.atBlanks != atBlanks
	d.width = width
	d.mapper.TabWidth = tabWidth
	d.wrapping = wrapping
	d.atBlanks = atBlanks
	if changed {
		d.computeAllOffsets()
	}
}

// SetTabsToSpaces toggles conversion of a typed tab into spaces of equal
// visual width.
func (d *Document) SetTabsToSpaces(on bool) { d.tabsToSpaces = on }

// SetAutoIndent toggles copying of leading whitespace onto new lines.
func (d *Document) SetAutoIndent(on bool) { d.autoIndent = on }

// LineCount returns the number of logical lines; always at least 1.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the runes of a line, or nil when out of bounds.
func (d *Document) Line(n int) []rune {
	if n < 0 || n >= len(d.lines) {
		return nil
	}
	return d.lines[n]
}

// LineLen returns the rune count of a line.
func (d *Document) LineLen(n int) int { return len(d.Line(n)) }

// Lines returns the document content as strings, one per logical line.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = string(l)
	}
	return out
}

// Text returns the whole document joined with LF.
func (d *Document) Text() string {
	return strings.Join(d.Lines(), "\n")
}

// Cursor returns the current cursor.
func (d *Document) Cursor() Cursor { return d.cursor }

// SetCursor clamps and sets the cursor.
func (d *Document) SetCursor(c Cursor) {
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line >= len(d.lines) {
		c.Line = len(d.lines) - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if l := d.LineLen(c.Line); c.Col > l {
		c.Col = l
	}
	d.cursor = c
}

// WrapOffsets returns the wrap break offsets of a line. The slice always
// starts at 0 and is strictly ascending.
func (d *Document) WrapOffsets(n int) []int {
	if n < 0 || n >= len(d.offsets) {
		return []int{0}
	}
	return d.offsets[n]
}

func (d *Document) wrapConfig() WrapConfig {
	w := WrapConfig{Width: d.width, AtBlanks: d.atBlanks, Mapper: d.mapper}
	if !d.wrapping {
		w.Width = 0 // a single segment per line
	}
	return w
}

func (d *Document) computeAllOffsets() {
	cfg := d.wrapConfig()
	d.offsets = make([][]int, len(d.lines))
	for i, l := range d.lines {
		d.offsets[i] = ComputeOffsets(l, cfg)
	}
}

func (d *Document) computeLineOffsets(n int) {
	d.offsets[n] = ComputeOffsets(d.lines[n], d.wrapConfig())
}

// Insert inserts text at the cursor, splitting on embedded line breaks and
// re-deriving wrap offsets only for the touched lines. A single typed tab
// becomes spaces of equal visual width when tabs-to-spaces is active; a
// single typed newline copies the previous line's leading whitespace when
// auto-indent is active.
func (d *Document) Insert(text string) {
	text = normalizeBreaks(text)
	line := d.lines[d.cursor.Line]
	pos := d.cursor.Col
	if d.tabsToSpaces && text == "\t" {
		col := d.mapper.Span(line, pos)
		text = strings.Repeat(" ", d.mapper.RuneSpan('\t', col))
	}
	if d.autoIndent && text == "\n" {
		indent := 0
		for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
			indent++
		}
		text += string(line[:indent])
	}

	head := string(line[:pos])
	tail := string(line[pos:])
	parts := strings.Split(head+text, "\n")
	endCol := len([]rune(parts[len(parts)-1]))
	parts[len(parts)-1] += tail

	d.lines[d.cursor.Line] = []rune(parts[0])
	d.computeLineOffsets(d.cursor.Line)
	for i := 1; i < len(parts); i++ {
		d.insertLineAfter(d.cursor.Line+i-1, []rune(parts[i]))
	}
	d.cursor.Line += len(parts) - 1
	d.cursor.Col = endCol
	d.cursor.Wanted = d.wantedColumn()
	d.dirty = true
}

func (d *Document) insertLineAfter(n int, line []rune) {
	d.lines = append(d.lines, nil)
	copy(d.lines[n+2:], d.lines[n+1:])
	d.lines[n+1] = line
	d.offsets = append(d.offsets, nil)
	copy(d.offsets[n+2:], d.offsets[n+1:])
	d.offsets[n+1] = ComputeOffsets(line, d.wrapConfig())
}

func (d *Document) removeLine(n int) {
	d.lines = append(d.lines[:n], d.lines[n+1:]...)
	d.offsets = append(d.offsets[:n], d.offsets[n+1:]...)
	if len(d.lines) == 0 {
		d.lines = [][]rune{{}}
		d.offsets = [][]int{{0}}
	}
}

// Backspace deletes count runes before the cursor, merging with the
// previous line at a line start. Reaching the beginning of the file stops
// the deletion and returns ErrStartOfBuffer; this is a boundary condition,
// not a failure.
func (d *Document) Backspace(count int) error {
	for count > 0 {
		line := d.lines[d.cursor.Line]
		pos := d.cursor.Col
		if pos == 0 {
			if d.cursor.Line == 0 {
				d.cursor.Wanted = d.wantedColumn()
				return ErrStartOfBuffer
			}
			prev := d.lines[d.cursor.Line-1]
			merged := append(append([]rune{}, prev...), line...)
			d.lines[d.cursor.Line-1] = merged
			d.removeLine(d.cursor.Line)
			d.cursor.Line--
			d.cursor.Col = len(prev)
			d.computeLineOffsets(d.cursor.Line)
			count--
		} else {
			nb := min(pos, count)
			d.lines[d.cursor.Line] = append(line[:pos-nb:pos-nb], line[pos:]...)
			d.cursor.Col = pos - nb
			d.computeLineOffsets(d.cursor.Line)
			count -= nb
		}
		d.dirty = true
	}
	d.cursor.Wanted = d.wantedColumn()
	return nil
}

// Delete deletes count runes at the cursor, merging the next line up at a
// line end. Reaching the end of the file returns ErrEndOfBuffer.
func (d *Document) Delete(count int) error {
	for count > 0 {
		line := d.lines[d.cursor.Line]
		pos := d.cursor.Col
		if pos == len(line) {
			if d.cursor.Line == len(d.lines)-1 {
				return ErrEndOfBuffer
			}
			next := d.lines[d.cursor.Line+1]
			d.lines[d.cursor.Line] = append(line[:len(line):len(line)], next...)
			d.removeLine(d.cursor.Line + 1)
			d.computeLineOffsets(d.cursor.Line)
		} else {
			d.lines[d.cursor.Line] = append(line[:pos:pos], line[pos+1:]...)
			d.computeLineOffsets(d.cursor.Line)
		}
		count--
		d.dirty = true
	}
	return nil
}

// CurrentRune returns the rune under the cursor, '\n' at a line end, or 0
// at the end of the buffer.
func (d *Document) CurrentRune() rune {
	line := d.lines[d.cursor.Line]
	if d.cursor.Col < len(line) {
		return line[d.cursor.Col]
	}
	if d.cursor.Line < len(d.lines)-1 {
		return '\n'
	}
	return 0
}
