package core

import (
	"regexp"
	"unicode/utf8"
)

// SearchState holds the active pattern and its matching flags. The rune
// length of the most recent match anchors in-place replacement.
type SearchState struct {
	Pattern       string
	CaseSensitive bool
	Regexp        bool
	Backwards     bool

	matchedLen int
}

// MatchedLen returns the rune length of the last match, or -1 when no
// search has matched yet.
func (s *SearchState) MatchedLen() int {
	if s.matchedLen == 0 {
		return -1
	}
	return s.matchedLen
}

// Compile builds the matcher for the current pattern. Literal mode escapes
// metacharacters; case-insensitive matching folds Unicode case.
func (s *SearchState) Compile() (*regexp.Regexp, error) {
	if s.Pattern == "" {
		return nil, ErrNoSearchPattern
	}
	pat := s.Pattern
	if !s.Regexp {
		pat = regexp.QuoteMeta(pat)
	}
	if !s.CaseSensitive {
		pat = "(?i)" + pat
	}
	return regexp.Compile(pat)
}

// matchStarts returns the rune offsets of every match in text, recording
// the rune length of the last one found.
func (s *SearchState) matchStarts(re *regexp.Regexp, text string) []int {
	var starts []int
	for _, loc := range re.FindAllStringIndex(text, -1) {
		starts = append(starts, utf8.RuneCountInString(text[:loc[0]]))
		s.matchedLen = utf8.RuneCountInString(text[loc[0]:loc[1]])
	}
	return starts
}

// NextMatch moves the cursor to the next match in the search direction:
// first the rest of the current line, then the remaining lines cyclically.
// wrapped reports that the scan passed the edge of the buffer to reach the
// match. Returns ErrOnlyOccurrence when the only match is the one under
// the cursor and ErrNotFound when the pattern matches nowhere.
func (s *SearchState) NextMatch(d *Document) (wrapped bool, err error) {
	re, err := s.Compile()
	if err != nil {
		return false, err
	}
	line := d.Cursor().Line
	col := d.Cursor().Col
	dir := 1
	if s.Backwards {
		dir = -1
	}

	newLine, newPos := -1, -1
	curRes := s.matchStarts(re, string(d.Line(line)))
	if s.Backwards {
		for i, j := 0, len(curRes)-1; i < j; i, j = i+1, j-1 {
			curRes[i], curRes[j] = curRes[j], curRes[i]
		}
	}
	for _, r := range curRes {
		if (s.Backwards && r < col) || (!s.Backwards && r > col) {
			newLine, newPos = line, r
			break
		}
	}
	if newPos < 0 {
		for cur := line; ; {
			cur = (cur + dir + d.LineCount()) % d.LineCount()
			if cur == line {
				break
			}
			res := s.matchStarts(re, string(d.Line(cur)))
			if len(res) > 0 {
				newLine = cur
				if s.Backwards {
					newPos = res[len(res)-1]
				} else {
					newPos = res[0]
				}
				break
			}
		}
	}
	if newPos < 0 && len(curRes) > 0 {
		newLine, newPos = line, curRes[0]
	}
	if newPos < 0 {
		return false, ErrNotFound
	}
	if newLine == line && newPos == col {
		return false, ErrOnlyOccurrence
	}
	wrapped = (s.Backwards && (newLine > line || (newLine == line && newPos > col))) ||
		(!s.Backwards && (newLine < line || (newLine == line && newPos < col)))
	d.GotoLine(newLine, newPos)
	return wrapped, nil
}

// ReplaceFromCursor replaces chars runes starting at the cursor with text,
// leaving the cursor in place.
func (d *Document) ReplaceFromCursor(chars int, text string) {
	line := d.lines[d.cursor.Line]
	pos := d.cursor.Col
	end := min(pos+chars, len(line))
	mod := append(append(line[:pos:pos], []rune(text)...), line[end:]...)
	d.lines[d.cursor.Line] = mod
	d.computeLineOffsets(d.cursor.Line)
	d.dirty = true
}

// ReplaceChoice is a per-match decision during interactive replace.
type ReplaceChoice int

const (
	ReplaceNo ReplaceChoice = iota
	ReplaceYes
	ReplaceRest // replace this match and every further one unprompted
	ReplaceCancel
)

// ReplaceAll runs the interactive replace loop: for each match found by
// NextMatch, decide is asked (until ReplaceRest short-circuits it) and the
// match is replaced with text when approved. The pass ends when the scan
// comes full circle past its starting position, and each match coordinate
// is visited at most once, so the loop terminates even when the
// replacement re-introduces the pattern or shifts later matches. Returns
// the number of replacements performed.
func (s *SearchState) ReplaceAll(d *Document, text string, decide func(match Position) ReplaceChoice) (int, error) {
	if _, err := s.Compile(); err != nil {
		return 0, err
	}
	replaced := 0
	all := false
	wrapped := false
	origin := d.Cursor().Position
	visited := make(map[Position]struct{})
	for {
		w, err := s.NextMatch(d)
		if err != nil {
			if IsNotFound(err) {
				break
			}
			return replaced, err
		}
		wrapped = wrapped || w
		match := d.Cursor().Position
		if wrapped && s.pastOrigin(match, origin) {
			break
		}
		key := match
		if s.Backwards {
			// Keyed from the line end so already-replaced text ahead of
			// the match does not shift the coordinate.
			key.Col = d.LineLen(match.Line) - match.Col
		}
		if _, seen := visited[key]; seen {
			break
		}
		visited[key] = struct{}{}

		op := ReplaceRest
		if !all {
			op = decide(match)
		}
		switch op {
		case ReplaceRest:
			all = true
			fallthrough
		case ReplaceYes:
			d.ReplaceFromCursor(s.matchedLen, text)
			replaced++
			if match.Line == origin.Line && match.Col < origin.Col {
				origin.Col += len([]rune(text)) - s.matchedLen
			}
			if !s.Backwards {
				// Skip past the replacement so a self-embedding
				// replacement cannot re-match inside its own output.
				// The scan looks strictly after the cursor, hence -1.
				d.SetCursor(Cursor{Position: Position{
					Line: match.Line,
					Col:  match.Col + len([]rune(text)) - 1,
				}})
			}
		case ReplaceCancel:
			return replaced, nil
		}
	}
	return replaced, nil
}

// pastOrigin reports that a post-wraparound match has come full circle,
// strictly beyond where the replace pass started.
func (s *SearchState) pastOrigin(match, origin Position) bool {
	if s.Backwards {
		return match.Before(origin)
	}
	return origin.Before(match)
}
