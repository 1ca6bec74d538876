// Package highlighter renders buffer lines with chroma syntax colors.
package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colors lines for display. A paint pass calls Reset and then
// Highlight once per displayed line in order; tokens come from a cache of
// the whole buffer so multi-line constructs (block comments, markdown
// fences) color correctly.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	cache      map[int][]chroma.Token // tokens by line number
	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
	next       int // line cursor of the current paint pass
}

// New creates a highlighter for a chroma language name and style theme.
// Unknown languages fall back to plain text.
func New(language, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		cache:      make(map[int][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// ForPath creates a highlighter matching the lexer by file name.
func ForPath(path, theme string) *Highlighter {
	lexer := lexers.Match(path)
	if lexer == nil {
		return New("", theme)
	}
	h := New("", theme)
	h.lexer = chroma.Coalesce(lexer)
	return h
}

// Load tokenizes the whole buffer and populates the line cache. Call
// whenever the content changes.
/* TODO: Optimize to only tokenize changed lines for large files */
func (sh *Highlighter) Load(lines []string) {
	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()

	sh.cache = make(map[int][]chroma.Token)

	content := strings.Join(lines, "\n")
	if content == "" {
		return
	}

	iterator, err := sh.lexer.Tokenise(nil, content)
	if err != nil {
		// Cache empty tokens so a bad buffer is not re-tokenized per paint.
		for i := range lines {
			sh.cache[i] = []chroma.Token{}
		}
		return
	}

	lineNum := 0
	sh.cache[lineNum] = []chroma.Token{}
	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				sh.cache[lineNum] = append(sh.cache[lineNum], chroma.Token{Type: token.Type, Value: before})
			}
			lineNum++
			sh.cache[lineNum] = []chroma.Token{}
			value = after
		}
		if value != "" {
			sh.cache[lineNum] = append(sh.cache[lineNum], chroma.Token{Type: token.Type, Value: value})
		}
	}
}

// Reset starts a new paint pass at the first displayed line.
func (sh *Highlighter) Reset() {
	sh.next = 0
}

// SkipTo positions the paint pass at an arbitrary buffer line, for windows
// that do not start at the top.
func (sh *Highlighter) SkipTo(line int) {
	sh.next = line
}

// Highlight colors the next line of the pass. When the cached tokens no
// longer match the text (an edit not yet re-loaded), the line is tokenized
// alone as a fallback.
func (sh *Highlighter) Highlight(tabWidth int, line string) string {
	_ = tabWidth // tabs are expanded by the caller before highlighting

	sh.cacheMutex.RLock()
	tokens, ok := sh.cache[sh.next]
	sh.cacheMutex.RUnlock()
	sh.next++

	if !ok || joinedValue(tokens) != line {
		it, err := sh.lexer.Tokenise(nil, line)
		if err != nil {
			return line
		}
		tokens = it.Tokens()
		// Lexers with EnsureNL append a line break the row must not carry.
		if n := len(tokens); n > 0 {
			tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
		}
	}

	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(sh.styleFor(token.Type).Render(token.Value))
	}
	return b.String()
}

func joinedValue(tokens []chroma.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Value)
	}
	return b.String()
}

// styleFor converts a chroma token type to a lipgloss style, cached.
func (sh *Highlighter) styleFor(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)
	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()
	return style
}
