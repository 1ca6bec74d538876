package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Capability gates a class of session operations, checked once at command
// dispatch rather than inside every operation.
type Capability int

const (
	// CanWrite allows buffer mutation and plain saves.
	CanWrite Capability = iota
	// CanRestructureFile allows save-as to a new path, append/prepend
	// writes, backups and format changes.
	CanRestructureFile
)

// Capabilities is the set of capabilities granted to a session.
type Capabilities map[Capability]struct{}

// AllCapabilities grants everything; the default for a normal session.
func AllCapabilities() Capabilities {
	return Capabilities{CanWrite: {}, CanRestructureFile: {}}
}

// ViewCapabilities grants nothing: a read-only session.
func ViewCapabilities() Capabilities { return Capabilities{} }

func (c Capabilities) Has(cap Capability) bool {
	_, ok := c[cap]
	return ok
}

// Operation is a resolved high-level editing command.
type Operation int

const (
	OpLeft Operation = iota
	OpRight
	OpUp
	OpDown
	OpNextWord
	OpPrevWord
	OpBeginningOfLine
	OpEndOfLine
	OpFirstLine
	OpLastLine
	OpPageUp
	OpPageDown
	OpScrollUp
	OpScrollDown
	OpBackspace
	OpDelete
	OpCut
	OpCutToEnd
	OpCopy
	OpUncut
	OpToggleMark
	OpMatching
	OpNextBuffer
	OpPrevBuffer
	OpNextSearch
	OpToggleWrapping
	OpToggleAtBlanks
	OpToggleTabsToSpaces
	OpToggleAutoIndent
	OpToggleSmooth
)

// mutating lists the operations requiring CanWrite.
var mutating = map[Operation]bool{
	OpBackspace: true,
	OpDelete:    true,
	OpCut:       true,
	OpCutToEnd:  true,
	OpUncut:     true,
}

// Session orchestrates the open buffers, the viewport, the cut buffer and
// the search state, and dispatches resolved commands to the active
// document. A terminal resize may arrive from a separate delivery context;
// the session mutex serializes it against in-progress mutations.
type Session struct {
	mu sync.Mutex

	docs   []*Document
	active int

	view    Viewport
	cut     CutBuffer
	search  SearchState
	history *PatternHistory

	caps    Capabilities
	lastCut bool
	message string

	width, height int
	tabWidth      int
	wrapping      bool
	atBlanks      bool
	tabsToSpaces  bool
	autoIndent    bool

	suggestionBox  *Box
	suggestions    []string
	suggestionDocs map[string][]string

	mouseRow, mouseCol int

	updateSignal chan Signal
}

// SessionConfig carries the initial session settings.
type SessionConfig struct {
	Capabilities Capabilities
	HistoryPath  string
	TabWidth     int
	Wrapping     bool
	AtBlanks     bool
	TabsToSpaces bool
	AutoIndent   bool
	Smooth       bool
}

// NewSession creates a session holding a single empty buffer.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Capabilities == nil {
		cfg.Capabilities = AllCapabilities()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	s := &Session{
		caps:         cfg.Capabilities,
		history:      NewPatternHistory(cfg.HistoryPath),
		width:        80,
		height:       24,
		tabWidth:     cfg.TabWidth,
		wrapping:     cfg.Wrapping,
		atBlanks:     cfg.AtBlanks,
		tabsToSpaces: cfg.TabsToSpaces,
		autoIndent:   cfg.AutoIndent,
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}
	s.view.Smooth = cfg.Smooth
	s.addDocument(NewDocument())
	return s
}

func (s *Session) addDocument(d *Document) {
	d.SetLayout(s.width, s.tabWidth, s.wrapping, s.atBlanks)
	d.SetTabsToSpaces(s.tabsToSpaces)
	d.SetAutoIndent(s.autoIndent)
	s.docs = append(s.docs, d)
	s.active = len(s.docs) - 1
}

func (s *Session) doc() *Document { return s.docs[s.active] }

// Doc returns the active document.
func (s *Session) Doc() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc()
}

// Documents returns the number of open buffers.
func (s *Session) Documents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Message returns and clears the pending status message.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.message
	s.message = ""
	return m
}

func (s *Session) setMessage(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.DispatchMessage(s.message)
}

// Open loads path into a new buffer and makes it active. A read failure
// still leaves a usable empty buffer named after the path; the session
// keeps running with the failure as a status message.
func (s *Session) Open(path string) error {
	d, err := Open(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addDocument(d)
	s.view.Top()
	s.DispatchSignal(BufferSwitchSignal{s.active, d.Title()})
	if err != nil {
		s.setMessage("%v", err)
		s.DispatchError(err)
		return err
	}
	return nil
}

// CloseBuffer removes the active buffer. The last remaining buffer is
// replaced by an empty one so the session always has a document.
func (s *Session) CloseBuffer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs[:s.active], s.docs[s.active+1:]...)
	if len(s.docs) == 0 {
		s.addDocument(NewDocument())
	}
	if s.active >= len(s.docs) {
		s.active = len(s.docs) - 1
	}
	s.view.Top()
	s.ensureVisible()
	s.DispatchSignal(BufferSwitchSignal{s.active, s.doc().Title()})
}

func (s *Session) switchBuffer(delta int) {
	s.active = (s.active + delta + len(s.docs)) % len(s.docs)
	s.view.Top()
	s.ensureVisible()
	s.DispatchSignal(BufferSwitchSignal{s.active, s.doc().Title()})
}

// Resize updates the screen geometry; safe to call from the resize signal
// context, serialized against any in-progress mutation.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width < 2 || height < 1 {
		return
	}
	s.width = width
	s.height = height
	for _, d := range s.docs {
		d.SetLayout(width, s.tabWidth, s.wrapping, s.atBlanks)
	}
	s.ensureVisible()
}

func (s *Session) applyLayout() {
	for _, d := range s.docs {
		d.SetLayout(s.width, s.tabWidth, s.wrapping, s.atBlanks)
		d.SetTabsToSpaces(s.tabsToSpaces)
		d.SetAutoIndent(s.autoIndent)
	}
}

func (s *Session) ensureVisible() {
	s.view.EnsureVisible(s.doc(), s.width, s.height)
}

// Do dispatches a resolved operation to the active document, checking the
// session's capabilities once here. Boundary and not-found conditions
// become status messages, never failures.
func (s *Session) Do(op Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mutating[op] && !s.caps.Has(CanWrite) {
		s.setMessage("%v", ErrReadOnly)
		return ErrReadOnly
	}

	d := s.doc()
	var err error
	isCut := false
	switch op {
	case OpLeft:
		err = d.MoveLeft(1)
	case OpRight:
		err = d.MoveRight(1)
	case OpUp:
		err = d.MoveUp(1)
	case OpDown:
		err = d.MoveDown(1)
	case OpNextWord:
		err = d.NextWord()
	case OpPrevWord:
		err = d.PrevWord()
	case OpBeginningOfLine:
		d.BeginningOfLine()
	case OpEndOfLine:
		d.EndOfLine()
	case OpFirstLine:
		d.FirstLine()
	case OpLastLine:
		d.LastLine()
	case OpPageUp:
		err = d.MoveUp(s.height - 1)
		s.view.MoveDisplayUp(d, s.height-1)
	case OpPageDown:
		err = d.MoveDown(s.height - 1)
		s.view.MoveDisplayDown(d, s.height, s.height-1)
	case OpScrollUp:
		s.view.MoveDisplayUp(d, 1)
	case OpScrollDown:
		s.view.MoveDisplayDown(d, s.height, 1)
	case OpBackspace:
		err = d.Backspace(1)
	case OpDelete:
		err = d.Delete(1)
	case OpCut:
		if !s.lastCut {
			s.cut.Reset()
		}
		d.Cut(&s.cut)
		isCut = true
	case OpCutToEnd:
		if !s.lastCut {
			s.cut.Reset()
		}
		d.CutToEnd(&s.cut)
		isCut = true
	case OpCopy:
		if !s.lastCut {
			s.cut.Reset()
		}
		d.Copy(&s.cut)
		isCut = true
	case OpUncut:
		d.Uncut(&s.cut)
	case OpToggleMark:
		if d.ToggleMark() {
			s.setMessage("Mark Set")
		} else {
			s.setMessage("Mark Unset")
		}
	case OpMatching:
		err = d.Matching()
	case OpNextBuffer:
		s.switchBuffer(1)
	case OpPrevBuffer:
		s.switchBuffer(-1)
	case OpNextSearch:
		return s.findNextLocked()
	case OpToggleWrapping:
		s.wrapping = !s.wrapping
		s.applyLayout()
		if s.wrapping {
			s.setMessage("Lines will be wrapped")
		} else {
			s.setMessage("Lines will not be wrapped")
		}
	case OpToggleAtBlanks:
		s.atBlanks = !s.atBlanks
		s.applyLayout()
		s.setMessage("Wrapping at blanks %s", enabled(s.atBlanks))
	case OpToggleTabsToSpaces:
		s.tabsToSpaces = !s.tabsToSpaces
		s.applyLayout()
		s.setMessage("Conversion of typed tabs to spaces %s", enabled(s.tabsToSpaces))
	case OpToggleAutoIndent:
		s.autoIndent = !s.autoIndent
		s.applyLayout()
		s.setMessage("Auto indent %s", enabled(s.autoIndent))
	case OpToggleSmooth:
		s.view.Smooth = !s.view.Smooth
		s.setMessage("Smooth scrolling %s", enabled(s.view.Smooth))
	default:
		return ErrInvalidCommand
	}
	s.lastCut = isCut

	if err != nil {
		switch {
		case IsBoundary(err):
			s.setMessage("%v", err)
			err = nil
		case IsNotFound(err):
			s.setMessage("%v", err)
			err = nil
		}
	}
	s.ensureVisible()
	return err
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

// Insert types text into the active buffer.
func (s *Session) Insert(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.caps.Has(CanWrite) {
		s.setMessage("%v", ErrReadOnly)
		return ErrReadOnly
	}
	s.doc().Insert(text)
	s.lastCut = false
	s.ensureVisible()
	return nil
}

// Goto parses a 1-based "line[,column]" target and moves the cursor.
// Malformed input aborts with ErrInvalidLineNumber and no motion.
func (s *Session) Goto(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts := strings.SplitN(strings.TrimSpace(target), ",", 2)
	line, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || line < 1 {
		s.setMessage("%v", ErrInvalidLineNumber)
		return ErrInvalidLineNumber
	}
	col := 1
	if len(parts) == 2 {
		col, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || col < 1 {
			s.setMessage("%v", ErrInvalidLineNumber)
			return ErrInvalidLineNumber
		}
	}
	s.doc().GotoLine(line-1, col-1)
	s.lastCut = false
	s.ensureVisible()
	return nil
}

// SearchConfig mirrors the search prompt toggles.
type SearchConfig struct {
	CaseSensitive bool
	Regexp        bool
	Backwards     bool
}

// SetSearch installs a new pattern, validates it and records it in the
// pattern history.
func (s *Session) SetSearch(pattern string, cfg SearchConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = SearchState{
		Pattern:       pattern,
		CaseSensitive: cfg.CaseSensitive,
		Regexp:        cfg.Regexp,
		Backwards:     cfg.Backwards,
	}
	if _, err := s.search.Compile(); err != nil {
		s.setMessage("%v", err)
		return err
	}
	s.history.Add(pattern)
	return nil
}

// FindNext repeats the search in the stored direction.
func (s *Session) FindNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findNextLocked()
}

func (s *Session) findNextLocked() error {
	wrapped, err := s.search.NextMatch(s.doc())
	s.lastCut = false
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.setMessage("%q not found", s.search.Pattern)
		} else {
			s.setMessage("%v", err)
		}
		s.ensureVisible()
		return err
	}
	if wrapped {
		s.setMessage("Search Wrapped")
	}
	s.ensureVisible()
	return nil
}

// Replace runs the interactive replace loop with the current pattern:
// decide is consulted per match until it answers ReplaceRest or
// ReplaceCancel. The replacement count is reported as a status message.
func (s *Session) Replace(text string, decide func(match Position) ReplaceChoice) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.caps.Has(CanWrite) {
		s.setMessage("%v", ErrReadOnly)
		return 0, ErrReadOnly
	}
	n, err := s.search.ReplaceAll(s.doc(), text, decide)
	s.lastCut = false
	s.setMessage("Replaced %d occurrences", n)
	s.ensureVisible()
	return n, err
}

// ReplaceCurrent replaces the match under the cursor with text, using the
// last match's recorded length.
func (s *Session) ReplaceCurrent(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.caps.Has(CanWrite) {
		s.setMessage("%v", ErrReadOnly)
		return ErrReadOnly
	}
	n := s.search.MatchedLen()
	if n < 0 {
		return ErrNoSearchPattern
	}
	d := s.doc()
	d.ReplaceFromCursor(n, text)
	if !s.search.Backwards {
		// Park the cursor on the last inserted rune so the next forward
		// scan cannot re-match inside the replacement's own output.
		c := d.Cursor().Position
		d.SetCursor(Cursor{Position: Position{Line: c.Line, Col: c.Col + len([]rune(text)) - 1}})
	}
	s.ensureVisible()
	return nil
}

// CutText returns the text the next uncut would insert; used to mirror the
// cut buffer into the system clipboard.
func (s *Session) CutText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cut.Text()
}

// History exposes the search pattern history for prompt recall.
func (s *Session) History() *PatternHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Save writes the active buffer. Writing to a different path, appending,
// prepending or taking a backup requires CanRestructureFile.
func (s *Session) Save(path string, mode WriteMode, backup bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.caps.Has(CanWrite) {
		s.setMessage("%v", ErrReadOnly)
		return ErrReadOnly
	}
	d := s.doc()
	restructures := path != d.Path() || mode != WriteOverwrite || backup
	if restructures && !s.caps.Has(CanRestructureFile) {
		s.setMessage("%v", ErrReadOnly)
		return ErrReadOnly
	}
	if err := d.Save(path, mode, backup); err != nil {
		s.setMessage("%v", err)
		s.DispatchError(err)
		return err
	}
	s.setMessage("Wrote %d lines", d.LineCount())
	s.DispatchSignal(SaveSignal{path, d.LineCount()})
	return nil
}

// SetFormat changes the end-of-line write format of the active buffer.
func (s *Session) SetFormat(f Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.caps.Has(CanRestructureFile) {
		s.setMessage("%v", ErrReadOnly)
		return ErrReadOnly
	}
	s.doc().SetFormat(f)
	return nil
}

// Quit asks the UI to shut down. A dirty buffer blocks the quit so the
// caller can run a save prompt first.
func (s *Session) Quit(force bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !force && s.doc().Dirty() {
		s.setMessage("Save modified buffer?")
		return false
	}
	s.history.Persist()
	s.DispatchSignal(QuitSignal{})
	return true
}

// ShowSuggestions opens the suggestion box at the cursor with docs keyed
// by suggestion text for the side documentation panel.
func (s *Session) ShowSuggestions(list []string, docs map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = list
	s.suggestionDocs = docs
	row, col := s.view.CursorScreen(s.doc())
	s.suggestionBox = BuildSuggestionBox(list, row, col, s.height, s.width)
}

// HideSuggestions closes the suggestion box.
func (s *Session) HideSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestionBox = nil
	s.suggestions = nil
	s.suggestionDocs = nil
}

// SuggestionDown moves the suggestion selection down, wrapping around.
func (s *Session) SuggestionDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suggestionBox != nil {
		s.suggestionBox.Down()
	}
}

// SuggestionUp moves the suggestion selection up, wrapping around.
func (s *Session) SuggestionUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suggestionBox != nil {
		s.suggestionBox.Up()
	}
}

// SelectedSuggestion returns the highlighted suggestion, if the box is
// open.
func (s *Session) SelectedSuggestion() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suggestionBox == nil {
		return "", false
	}
	i := s.suggestionBox.Selected()
	if i < 0 || i >= len(s.suggestions) {
		return "", false
	}
	return s.suggestions[i], true
}

// SetMousePosition records the pointer location used to pick which
// diagnostic tooltip to display.
func (s *Session) SetMousePosition(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseRow = row
	s.mouseCol = col
}

// GetDisplayedLines renders rowCount plain-text rows of the active buffer
// with any overlay boxes already composited in: the diagnostic tooltip
// under the pointer, the suggestion box and its documentation panel.
func (s *Session) GetDisplayedLines(rowCount int, diagnostics []Diagnostic) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.doc()
	rows := s.view.VisibleRows(d, s.width, rowCount)

	for _, diag := range diagnostics {
		if diag.StartLine != diag.EndLine {
			continue
		}
		pos, ok := s.view.PositionAt(d, s.mouseRow, s.mouseCol)
		if !ok || pos.Line != diag.StartLine {
			continue
		}
		if pos.Col < diag.StartCol || pos.Col > diag.EndCol {
			continue
		}
		row, col := s.view.ScreenPosition(d, Position{Line: diag.StartLine, Col: diag.StartCol})
		if row < 0 || row >= len(rows) {
			continue
		}
		if box := BuildTooltipBox(diag.Message, row, max(col, 0), len(rows), s.width); box != nil {
			box.Draw(rows, s.width)
		}
	}

	if s.suggestionBox != nil {
		s.suggestionBox.Draw(rows, s.width)
		if sel, ok := s.selectedDocs(); ok {
			if box := BuildDocumentationBox(s.suggestionBox, sel, len(rows), s.width); box != nil {
				box.Draw(rows, s.width)
			}
		}
	}
	return rows
}

func (s *Session) selectedDocs() ([]string, bool) {
	i := s.suggestionBox.Selected()
	if i < 0 || i >= len(s.suggestions) {
		return nil, false
	}
	doc, ok := s.suggestionDocs[s.suggestions[i]]
	return doc, ok && len(doc) > 0
}

// Viewport exposes the current scroll window.
func (s *Session) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// CursorScreen returns the cursor position relative to the window origin.
func (s *Session) CursorScreen() (row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.CursorScreen(s.doc())
}
