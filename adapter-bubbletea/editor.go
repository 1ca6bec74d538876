// Package adapter_bubbletea renders a nano-style editing session as a
// bubbletea model.
package adapter_bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/gopico/gopico/core"
	"github.com/gopico/gopico/highlighter"
)

type Theme struct {
	HeaderStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
	PromptStyle    lipgloss.Style
	MessageStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	CursorStyle    lipgloss.Style
	SelectionStyle lipgloss.Style
	ShortcutStyle  lipgloss.Style
}

var DefaultTheme = Theme{
	HeaderStyle:    lipgloss.NewStyle().Reverse(true),
	StatusStyle:    lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	PromptStyle:    lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	CursorStyle:    lipgloss.NewStyle().Reverse(true),
	SelectionStyle: lipgloss.NewStyle().Background(lipgloss.Color("237")),
	ShortcutStyle:  lipgloss.NewStyle().Reverse(true),
}

// prompt identifies the active modal sub-interaction, if any. Escape or
// ctrl+c cancels it and unwinds to the prior stable state.
type prompt int

const (
	promptNone prompt = iota
	promptSearch
	promptReplaceWith
	promptReplaceConfirm
	promptSaveAs
	promptGoto
	promptQuitConfirm
)

// SaveMsg reports a completed save.
type SaveMsg struct {
	Path  string
	Lines int
}

// QuitMsg asks the host program to stop.
type QuitMsg struct{}

type Model struct {
	session *core.Session
	theme   Theme

	width, height int
	isFocused     bool

	input      textinput.Model
	prompt     prompt
	promptHint string

	searchCfg      core.SearchConfig
	searchReplaces bool
	replaceTerm    string
	replaced       int
	replaceSeen    map[core.Position]struct{}
	replaceOrigin  core.Position
	replaceWrapped bool
	quitAfterSave  bool

	saveMode   core.WriteMode
	saveBackup bool

	message string
	err     error

	highlighter *highlighter.Highlighter
	diagnostics []core.Diagnostic
}

// New creates an editor model around a fresh session.
func New(cfg core.SessionConfig) Model {
	ti := textinput.New()
	ti.Prompt = ""

	return Model{
		session:   core.NewSession(cfg),
		theme:     DefaultTheme,
		width:     80,
		height:    24,
		isFocused: true,
		input:     ti,
	}
}

// Session exposes the underlying editing session.
func (m *Model) Session() *core.Session { return m.session }

// WithTheme sets a custom theme.
func (m *Model) WithTheme(theme Theme) { m.theme = theme }

// OpenFile loads a file into a new buffer and picks a matching syntax
// highlighter.
func (m *Model) OpenFile(path, chromaTheme string) error {
	err := m.session.Open(path)
	m.highlighter = highlighter.ForPath(path, chromaTheme)
	m.highlighter.Load(m.session.Doc().Lines())
	return err
}

// SetDiagnostics installs the diagnostics underlined in the buffer and
// shown as hover tooltips.
func (m *Model) SetDiagnostics(diags []core.Diagnostic) {
	m.diagnostics = diags
}

// Focus directs key input to the editor.
func (m *Model) Focus() { m.isFocused = true }

// Blur stops the editor from handling keys.
func (m *Model) Blur() { m.isFocused = false }

func (m *Model) bodyHeight() int {
	return max(1, m.height-3) // header, status, shortcut rows
}

func (m Model) Init() tea.Cmd {
	return m.listenForSessionUpdate()
}

func (m Model) listenForSessionUpdate() tea.Cmd {
	ch := m.session.UpdateSignalChan()
	return func() tea.Msg {
		return <-ch
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.Resize(msg.Width, m.bodyHeight())
		m.input.Width = msg.Width - 20

	case tea.MouseMsg:
		m.session.SetMousePosition(msg.Y-1, msg.X)

	case tea.KeyMsg:
		if !m.isFocused {
			break
		}
		var cmd tea.Cmd
		if m.prompt != promptNone {
			m, cmd = m.updatePrompt(msg)
		} else {
			m, cmd = m.updateEditing(msg)
		}
		cmds = append(cmds, cmd)
		if m.highlighter != nil {
			m.highlighter.Load(m.session.Doc().Lines())
		}

	case core.MessageSignal:
		m.message = msg.Value()
		m.err = nil
		cmds = append(cmds, m.listenForSessionUpdate())

	case core.ErrorSignal:
		m.err = msg.Value()
		m.message = ""
		cmds = append(cmds, m.listenForSessionUpdate())

	case core.SaveSignal:
		path, lines := msg.Value()
		cmds = append(cmds, func() tea.Msg { return SaveMsg{path, lines} }, m.listenForSessionUpdate())

	case core.QuitSignal:
		cmds = append(cmds, func() tea.Msg { return QuitMsg{} }, tea.Quit)

	case core.BufferSwitchSignal:
		if m.highlighter != nil {
			m.highlighter.Load(m.session.Doc().Lines())
		}
		cmds = append(cmds, m.listenForSessionUpdate())

	default:
		if m.prompt != promptNone {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderHeader()
	body := m.renderBody()
	status := m.renderStatus()
	shortcuts := m.renderShortcuts()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, shortcuts)
}

func (m Model) renderHeader() string {
	d := m.session.Doc()
	left := "  gopico"
	middle := d.Title()
	right := "        "
	if d.Dirty() {
		right = "Modified"
	}

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	if pad < 2 {
		middle = runewidth.Truncate(middle, max(4, lipgloss.Width(middle)+pad-2), "...")
		pad = m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	}
	lpad := max(0, pad/2)
	rpad := max(0, pad-lpad)
	line := left + strings.Repeat(" ", lpad) + middle + strings.Repeat(" ", rpad) + right + "  "
	return m.theme.HeaderStyle.Render(runewidth.Truncate(line, m.width, ""))
}

func (m Model) renderBody() string {
	rows := m.session.GetDisplayedLines(m.bodyHeight(), m.diagnostics)

	if m.highlighter != nil {
		m.highlighter.Reset()
		m.highlighter.SkipTo(m.session.Viewport().FirstLine)
		for i, row := range rows {
			rows[i] = m.highlighter.Highlight(4, row)
		}
	}

	base := strings.Join(rows, "\n")
	base = m.overlayCursor(base)
	return base
}

// overlayCursor paints the cursor cell in reverse video on top of the
// rendered rows.
func (m Model) overlayCursor(base string) string {
	if m.prompt != promptNone {
		return base
	}
	row, col := m.session.CursorScreen()
	if row < 0 || row >= m.bodyHeight() || col < 0 || col >= m.width {
		return base
	}
	cur := m.theme.CursorStyle.Render(" ")
	plain := m.session.GetDisplayedLines(m.bodyHeight(), nil)
	if row < len(plain) {
		runes := []rune(plain[row])
		if col < len(runes) {
			cur = m.theme.CursorStyle.Render(string(runes[col]))
		}
	}
	return overlay.Composite(cur, base, overlay.Left, overlay.Top, col, row)
}

func (m Model) renderStatus() string {
	var line string
	switch {
	case m.prompt != promptNone:
		line = m.theme.PromptStyle.Render(m.promptHint) + m.input.View()
	case m.err != nil:
		line = m.theme.ErrorStyle.Render("[ " + m.err.Error() + " ]")
	case m.message != "":
		line = m.theme.MessageStyle.Render("[ " + m.message + " ]")
	}
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

func (m Model) renderShortcuts() string {
	type sc struct{ key, label string }
	var list []sc
	switch m.prompt {
	case promptNone:
		list = []sc{
			{"^O", "Write Out"}, {"^W", "Where Is"}, {"^K", "Cut"}, {"^U", "Paste"},
			{"^\\", "Replace"}, {"^X", "Exit"},
		}
	case promptReplaceConfirm:
		list = []sc{{"Y", "Yes"}, {"N", "No"}, {"A", "All"}, {"^C", "Cancel"}}
	default:
		list = []sc{{"Enter", "Accept"}, {"^C", "Cancel"}}
	}
	var b strings.Builder
	for _, s := range list {
		b.WriteString(m.theme.ShortcutStyle.Render(s.key))
		b.WriteString(" " + s.label + "  ")
	}
	line := b.String()
	if w := lipgloss.Width(line); w > m.width {
		line = runewidth.Truncate(line, m.width, "")
	}
	return line
}
