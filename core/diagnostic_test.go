package core

import (
	"testing"

	"github.com/sourcegraph/go-lsp"
	"github.com/stretchr/testify/assert"
)

func TestFromLSP(t *testing.T) {
	in := []lsp.Diagnostic{
		{
			Range: lsp.Range{
				Start: lsp.Position{Line: 2, Character: 4},
				End:   lsp.Position{Line: 2, Character: 9},
			},
			Severity: lsp.Error,
			Message:  "undefined: foo",
		},
		{
			Range: lsp.Range{
				Start: lsp.Position{Line: 5, Character: 0},
				End:   lsp.Position{Line: 6, Character: 1},
			},
			Severity: lsp.Warning,
			Message:  "unused variable",
		},
	}

	assert.Equal(t, []Diagnostic{
		{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 9, Message: "undefined: foo", Severity: SeverityError},
		{StartLine: 5, StartCol: 0, EndLine: 6, EndCol: 1, Message: "unused variable", Severity: SeverityWarning},
	}, FromLSP(in))
}

func TestFromLSP_Empty(t *testing.T) {
	assert.Empty(t, FromLSP(nil))
}
