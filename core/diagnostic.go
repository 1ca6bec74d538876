package core

import (
	"github.com/sourcegraph/go-lsp"
)

// Severity ranks a diagnostic, matching LSP severity values.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic marks a span of buffer text carrying a message, shown as an
// underline with a tooltip box on hover. Coordinates are zero-based rune
// offsets.
type Diagnostic struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Message   string
	Severity  Severity
}

// FromLSP converts language-server diagnostics to buffer diagnostics.
func FromLSP(in []lsp.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(in))
	for _, d := range in {
		out = append(out, Diagnostic{
			StartLine: d.Range.Start.Line,
			StartCol:  d.Range.Start.Character,
			EndLine:   d.Range.End.Line,
			EndCol:    d.Range.End.Character,
			Message:   d.Message,
			Severity:  Severity(d.Severity),
		})
	}
	return out
}
