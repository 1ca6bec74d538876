package adapter_bubbletea

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gopico/gopico/core"
)

// editingOps maps plain key presses to session operations.
var editingOps = map[string]core.Operation{
	"left":       core.OpLeft,
	"right":      core.OpRight,
	"up":         core.OpUp,
	"down":       core.OpDown,
	"ctrl+right": core.OpNextWord,
	"ctrl+left":  core.OpPrevWord,
	"home":       core.OpBeginningOfLine,
	"ctrl+a":     core.OpBeginningOfLine,
	"end":        core.OpEndOfLine,
	"ctrl+e":     core.OpEndOfLine,
	"pgup":       core.OpPageUp,
	"ctrl+y":     core.OpPageUp,
	"pgdown":     core.OpPageDown,
	"ctrl+v":     core.OpPageDown,
	"alt+\\":     core.OpFirstLine,
	"alt+/":      core.OpLastLine,
	"backspace":  core.OpBackspace,
	"ctrl+h":     core.OpBackspace,
	"delete":     core.OpDelete,
	"ctrl+d":     core.OpDelete,
	"ctrl+k":     core.OpCut,
	"alt+k":      core.OpCutToEnd,
	"alt+6":      core.OpCopy,
	"ctrl+u":     core.OpUncut,
	"ctrl+^":     core.OpToggleMark,
	"ctrl+]":     core.OpMatching,
	"alt+.":      core.OpNextBuffer,
	"alt+,":      core.OpPrevBuffer,
	"alt+-":      core.OpScrollUp,
	"alt+=":      core.OpScrollDown,
	"ctrl+n":     core.OpNextSearch,
	"alt+l":      core.OpToggleWrapping,
	"alt+w":      core.OpToggleAtBlanks,
	"alt+o":      core.OpToggleTabsToSpaces,
	"alt+i":      core.OpToggleAutoIndent,
	"alt+s":      core.OpToggleSmooth,
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if op, ok := editingOps[key]; ok {
		m.session.Do(op)
		if op == core.OpCut || op == core.OpCutToEnd || op == core.OpCopy {
			// Best effort mirror into the system clipboard.
			_ = clipboard.WriteAll(m.session.CutText())
		}
		return m, nil
	}

	switch key {
	case "ctrl+x":
		if m.session.Quit(false) {
			return m, nil
		}
		return m.openPrompt(promptQuitConfirm, "Save modified buffer? "), nil

	case "ctrl+o":
		m.saveMode = core.WriteOverwrite
		m.saveBackup = false
		m = m.openPrompt(promptSaveAs, "File Name to Write: ")
		m.input.SetValue(m.session.Doc().Path())
		return m, nil

	case "ctrl+w":
		m.searchReplaces = false
		return m.openPrompt(promptSearch, m.searchHint()), nil

	case "ctrl+\\":
		m.searchReplaces = true
		return m.openPrompt(promptSearch, m.searchHint()), nil

	case "ctrl+_", "alt+g":
		return m.openPrompt(promptGoto, "Enter line number, column number: "), nil

	case "enter":
		m.session.Insert("\n")
	case "tab":
		m.session.Insert("\t")
	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			m.session.Insert(string(msg.Runes))
		}
	}
	return m, nil
}

func (m Model) openPrompt(p prompt, hint string) Model {
	m.prompt = p
	m.promptHint = hint
	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Width = max(10, m.width-len(hint)-2)
	m.input.Focus()
	return m
}

func (m Model) closePrompt() Model {
	m.prompt = promptNone
	m.promptHint = ""
	m.input.Blur()
	return m
}

func (m Model) searchHint() string {
	hint := "Search"
	if m.searchReplaces {
		hint = "Search (to replace)"
	}
	var mods []string
	if m.searchCfg.CaseSensitive {
		mods = append(mods, "Case Sensitive")
	}
	if m.searchCfg.Regexp {
		mods = append(mods, "Regexp")
	}
	if m.searchCfg.Backwards {
		mods = append(mods, "Backwards")
	}
	if len(mods) > 0 {
		hint += " [" + strings.Join(mods, " ") + "]"
	}
	return hint + ": "
}

func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	// Cancel unwinds to the prior stable state without touching the buffer.
	if key == "ctrl+c" || key == "esc" {
		if m.prompt == promptReplaceConfirm {
			return m.finishReplace(), nil
		}
		m.quitAfterSave = false
		return m.closePrompt(), nil
	}

	switch m.prompt {
	case promptSearch:
		switch key {
		case "alt+c":
			m.searchCfg.CaseSensitive = !m.searchCfg.CaseSensitive
			m.promptHint = m.searchHint()
		case "alt+r":
			m.searchCfg.Regexp = !m.searchCfg.Regexp
			m.promptHint = m.searchHint()
		case "alt+b":
			m.searchCfg.Backwards = !m.searchCfg.Backwards
			m.promptHint = m.searchHint()
		case "up":
			m.input.SetValue(m.session.History().Up(m.input.Value()))
			m.input.CursorEnd()
		case "down":
			m.input.SetValue(m.session.History().Down(m.input.Value()))
			m.input.CursorEnd()
		case "enter":
			pattern := m.input.Value()
			m = m.closePrompt()
			if err := m.session.SetSearch(pattern, m.searchCfg); err != nil {
				return m, nil
			}
			if m.searchReplaces {
				return m.openPrompt(promptReplaceWith, "Replace with: "), nil
			}
			m.session.FindNext()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case promptReplaceWith:
		if key == "enter" {
			m.replaceTerm = m.input.Value()
			m.replaced = 0
			m.replaceSeen = make(map[core.Position]struct{})
			m.replaceOrigin = m.session.Doc().Cursor().Position
			m.replaceWrapped = false
			m = m.closePrompt()
			return m.stepReplace(), nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case promptReplaceConfirm:
		switch key {
		case "y", "Y":
			if m.session.ReplaceCurrent(m.replaceTerm) == nil {
				m.replaced++
			}
			return m.stepReplace(), nil
		case "n", "N":
			return m.stepReplace(), nil
		case "a", "A":
			n, _ := m.session.Replace(m.replaceTerm, func(core.Position) core.ReplaceChoice {
				return core.ReplaceRest
			})
			m.replaced += n
			return m.finishReplace(), nil
		}

	case promptSaveAs:
		switch key {
		case "alt+a":
			if m.saveMode == core.WriteAppend {
				m.saveMode = core.WriteOverwrite
			} else {
				m.saveMode = core.WriteAppend
			}
			m.promptHint = m.saveHint()
		case "alt+p":
			if m.saveMode == core.WritePrepend {
				m.saveMode = core.WriteOverwrite
			} else {
				m.saveMode = core.WritePrepend
			}
			m.promptHint = m.saveHint()
		case "alt+b":
			m.saveBackup = !m.saveBackup
			m.promptHint = m.saveHint()
		case "alt+d":
			m.toggleFormat(core.FormatDos)
			m.promptHint = m.saveHint()
		case "alt+m":
			m.toggleFormat(core.FormatMac)
			m.promptHint = m.saveHint()
		case "enter":
			path := m.input.Value()
			quitAfter := m.quitAfterSave
			m.quitAfterSave = false
			m = m.closePrompt()
			// A failed save cancels any pending quit.
			if err := m.session.Save(path, m.saveMode, m.saveBackup); err == nil && quitAfter {
				m.session.Quit(true)
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case promptGoto:
		if key == "enter" {
			target := m.input.Value()
			m = m.closePrompt()
			m.session.Goto(target)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case promptQuitConfirm:
		switch key {
		case "y", "Y":
			m = m.closePrompt()
			m.quitAfterSave = true
			m.saveMode = core.WriteOverwrite
			m.saveBackup = false
			m = m.openPrompt(promptSaveAs, "File Name to Write: ")
			m.input.SetValue(m.session.Doc().Path())
			return m, nil
		case "n", "N":
			m = m.closePrompt()
			m.session.Quit(true)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) saveHint() string {
	hint := "File Name to Write"
	var mods []string
	switch m.saveMode {
	case core.WriteAppend:
		mods = append(mods, "Appending")
	case core.WritePrepend:
		mods = append(mods, "Prepending")
	}
	switch m.session.Doc().Format() {
	case core.FormatDos:
		mods = append(mods, "DOS Format")
	case core.FormatMac:
		mods = append(mods, "Mac Format")
	}
	if m.saveBackup {
		mods = append(mods, "Backup")
	}
	if len(mods) > 0 {
		hint += " [" + strings.Join(mods, " ") + "]"
	}
	return hint + ": "
}

func (m *Model) toggleFormat(f core.Format) {
	if m.session.Doc().Format() == f {
		m.session.SetFormat(core.FormatUnix)
	} else {
		m.session.SetFormat(f)
	}
}

// stepReplace advances to the next match and asks for confirmation, or
// ends the loop when the matches are exhausted, start repeating, or the
// scan has come full circle past its starting position.
func (m Model) stepReplace() Model {
	prev := m.session.Doc().Cursor().Position
	if err := m.session.FindNext(); err != nil {
		return m.finishReplace()
	}
	pos := m.session.Doc().Cursor().Position
	if m.searchCfg.Backwards {
		m.replaceWrapped = m.replaceWrapped || !pos.Before(prev)
	} else {
		m.replaceWrapped = m.replaceWrapped || !prev.Before(pos)
	}
	pastOrigin := m.replaceOrigin.Before(pos)
	if m.searchCfg.Backwards {
		pastOrigin = pos.Before(m.replaceOrigin)
	}
	if m.replaceWrapped && pastOrigin {
		return m.finishReplace()
	}
	if _, seen := m.replaceSeen[pos]; seen {
		return m.finishReplace()
	}
	m.replaceSeen[pos] = struct{}{}
	return m.openPrompt(promptReplaceConfirm, "Replace this instance? ")
}

func (m Model) finishReplace() Model {
	m = m.closePrompt()
	m.replaceSeen = nil
	m.message = "Replaced " + strconv.Itoa(m.replaced) + " occurrences"
	return m
}
