package core

import "unicode"

// WrapConfig carries the inputs that invalidate a line's wrap offsets:
// screen width, tab width and the word-boundary toggle.
type WrapConfig struct {
	Width    int
	AtBlanks bool
	Mapper   CoordinateMapper
}

func (c WrapConfig) breakable(r rune) bool {
	if c.AtBlanks {
		return r == ' '
	}
	return unicode.IsSpace(r)
}

// ComputeOffsets returns the soft-wrap break offsets for line: strictly
// ascending rune indices, always starting at 0, marking the start of each
// visual sub-line. A break is inserted whenever the accumulated visual
// width since the last break reaches Width-1, preferring the start of the
// most recent word; a break triggered on a blank lands after the blank run
// so trailing spaces stay on the previous sub-line.
func ComputeOffsets(line []rune, c WrapConfig) []int {
	offsets := []int{0}
	if c.Width <= 1 {
		return offsets
	}
	last := 0     // rune index of the last break
	lastCol := 0  // visual column of the last break
	prevword := 0 // rune index where the most recent word started
	inspace := false
	col := 0
	for i, r := range line {
		if c.breakable(r) {
			inspace = true
		} else if inspace {
			prevword = i
			inspace = false
		}
		if col-lastCol >= c.Width-1 {
			br := prevword
			if br <= last {
				if c.breakable(r) {
					// Break after the blank run.
					br = i
					for br < len(line) && c.breakable(line[br]) {
						br++
					}
				} else {
					br = i // no boundary since the last break, hard break
				}
			}
			if br > last && br < len(line) {
				offsets = append(offsets, br)
				last = br
				lastCol = c.Mapper.Span(line, br)
			}
		}
		col += c.Mapper.RuneSpan(r, col)
	}
	return offsets
}

// prevBreak returns the greatest offset strictly below off, if any.
func prevBreak(offsets []int, off int) (int, bool) {
	for i := len(offsets) - 1; i >= 0; i-- {
		if offsets[i] < off {
			return offsets[i], true
		}
	}
	return 0, false
}

// nextBreak returns the smallest offset strictly above off, if any.
func nextBreak(offsets []int, off int) (int, bool) {
	for _, o := range offsets {
		if o > off {
			return o, true
		}
	}
	return 0, false
}
