package highlighter

import (
	"regexp"
	"testing"
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func TestHighlight_PreservesLineContent(t *testing.T) {
	h := New("go", "monokai")
	lines := []string{"package main", "", "func main() {}"}
	h.Load(lines)

	h.Reset()
	for i, line := range lines {
		if got := plain(h.Highlight(4, line)); got != line {
			t.Fatalf("line %d: got %q, want %q", i, got, line)
		}
	}
}

func TestHighlight_SkipToMidBuffer(t *testing.T) {
	h := New("go", "monokai")
	lines := []string{"package main", "var x = 1"}
	h.Load(lines)

	h.Reset()
	h.SkipTo(1)
	if got := plain(h.Highlight(4, lines[1])); got != lines[1] {
		t.Fatalf("got %q, want %q", got, lines[1])
	}
}

func TestHighlight_StaleCacheFallsBackPerLine(t *testing.T) {
	h := New("go", "monokai")
	h.Load([]string{"old content"})

	h.Reset()
	if got := plain(h.Highlight(4, "edited line")); got != "edited line" {
		t.Fatalf("got %q, want %q", got, "edited line")
	}
}

func TestNew_UnknownLanguageFallsBack(t *testing.T) {
	h := New("definitely-not-a-language", "monokai")
	if got := plain(h.Highlight(4, "text")); got != "text" {
		t.Fatalf("got %q, want %q", got, "text")
	}
}

func TestForPath(t *testing.T) {
	h := ForPath("main.go", "monokai")
	h.Load([]string{"package main"})
	h.Reset()
	if got := plain(h.Highlight(4, "package main")); got != "package main" {
		t.Fatalf("got %q, want %q", got, "package main")
	}
}
