package core

import "errors"

// Boundary conditions: a buffer edge was reached. Not failures; callers
// surface them as status messages and the operation reports "did not move".
var (
	ErrStartOfBuffer = errors.New("start of buffer")
	ErrEndOfBuffer   = errors.New("end of buffer")
	ErrStartOfLine   = errors.New("start of line")
	ErrEndOfLine     = errors.New("end of line")
)

// Not-found conditions: a scan finished without a hit.
var (
	ErrNotFound          = errors.New("not found")
	ErrOnlyOccurrence    = errors.New("this is the only occurrence")
	ErrNoSearchPattern   = errors.New("no current search pattern")
	ErrNotABracket       = errors.New("not a bracket")
	ErrNoMatchingBracket = errors.New("no matching bracket")
)

// Validation errors: malformed input to a modal interaction. The
// interaction aborts and prior state is restored.
var (
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidLineNumber = errors.New("invalid line or column number")
	ErrInvalidSaveTarget = errors.New("invalid save target")
	ErrInvalidCommand    = errors.New("invalid command")
	ErrReadOnly          = errors.New("buffer is read-only")
)

// IsBoundary reports whether err is a buffer-edge condition that should be
// shown as a status message rather than treated as a failure.
func IsBoundary(err error) bool {
	return errors.Is(err, ErrStartOfBuffer) ||
		errors.Is(err, ErrEndOfBuffer) ||
		errors.Is(err, ErrStartOfLine) ||
		errors.Is(err, ErrEndOfLine)
}

// IsNotFound reports whether err is a search or bracket-match miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrOnlyOccurrence) ||
		errors.Is(err, ErrNoSearchPattern) ||
		errors.Is(err, ErrNotABracket) ||
		errors.Is(err, ErrNoMatchingBracket)
}
