package core

// Highlighter turns a plain line into its styled representation. A paint
// pass calls Reset once, then Highlight sequentially for every displayed
// line, so implementations may carry state across lines for multi-line
// constructs.
type Highlighter interface {
	Reset()
	Highlight(tabWidth int, line string) string
}

// PlainHighlighter passes lines through unstyled.
type PlainHighlighter struct{}

func (PlainHighlighter) Reset() {}

func (PlainHighlighter) Highlight(_ int, line string) string { return line }
