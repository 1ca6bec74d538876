package core

import (
	"bufio"
	"os"
	"strings"
)

const patternHistorySize = 100

// PatternHistory is a bounded most-recent-first list of past search and
// replace strings with an up/down recall cursor. Recall filters by prefix:
// Up and Down return the next stored pattern starting with hint, or hint
// itself when none matches. Optionally persisted to a file, one pattern
// per line.
type PatternHistory struct {
	path       string
	patterns   []string
	patternID  int
	lastMoveUp bool
}

// NewPatternHistory creates a history backed by path, loading any existing
// contents. An empty path keeps the history in memory only.
func NewPatternHistory(path string) *PatternHistory {
	h := &PatternHistory{path: path, patternID: -1}
	h.load()
	return h
}

// Up recalls the next older pattern matching hint.
func (h *PatternHistory) Up(hint string) string {
	out := hint
	if len(h.patterns) > 0 && h.patternID < len(h.patterns) {
		if !h.lastMoveUp && h.patternID > 0 && h.patternID < len(h.patterns)-1 {
			h.patternID++
		}
		if h.patternID < 0 {
			h.patternID = 0
		}
		found := false
		for pid := h.patternID; pid < len(h.patterns); pid++ {
			if hint == "" || strings.HasPrefix(h.patterns[pid], hint) {
				h.patternID = pid + 1
				out = h.patterns[pid]
				found = true
				break
			}
		}
		if !found {
			h.patternID = len(h.patterns)
		}
	}
	h.lastMoveUp = true
	return out
}

// Down recalls the next newer pattern matching hint.
func (h *PatternHistory) Down(hint string) string {
	out := hint
	if len(h.patterns) > 0 {
		if h.lastMoveUp {
			h.patternID--
		}
		if h.patternID < 0 {
			h.patternID = -1
		} else {
			found := false
			for pid := h.patternID; pid >= 0; pid-- {
				if hint == "" || strings.HasPrefix(h.patterns[pid], hint) {
					h.patternID = pid - 1
					out = h.patterns[pid]
					found = true
					break
				}
			}
			if !found {
				h.patternID = -1
			}
		}
	}
	h.lastMoveUp = false
	return out
}

// Add records a pattern at the front, dropping any older duplicate and the
// oldest entry once the bound is exceeded. Blank patterns are ignored.
func (h *PatternHistory) Add(pattern string) {
	if strings.TrimSpace(pattern) == "" {
		return
	}
	for i, p := range h.patterns {
		if p == pattern {
			h.patterns = append(h.patterns[:i], h.patterns[i+1:]...)
			break
		}
	}
	if len(h.patterns) >= patternHistorySize {
		h.patterns = h.patterns[:patternHistorySize-1]
	}
	h.patterns = append([]string{pattern}, h.patterns...)
	h.patternID = -1
}

// Patterns returns the stored patterns, most recent first.
func (h *PatternHistory) Patterns() []string {
	out := make([]string, len(h.patterns))
	copy(out, h.patterns)
	return out
}

func (h *PatternHistory) load() {
	if h.path == "" {
		return
	}
	f, err := os.Open(h.path)
	if err != nil {
		return // best effort, a missing history is fine
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" && len(h.patterns) < patternHistorySize {
			h.patterns = append(h.patterns, line)
		}
	}
}

// Persist writes the history back to its file, if any.
func (h *PatternHistory) Persist() error {
	if h.path == "" {
		return nil
	}
	var b strings.Builder
	for _, p := range h.patterns {
		if strings.TrimSpace(p) != "" {
			b.WriteString(p)
			b.WriteByte('\n')
		}
	}
	return os.WriteFile(h.path, []byte(b.String()), 0o644)
}
