package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	editor "github.com/gopico/gopico/adapter-bubbletea"
	"github.com/gopico/gopico/core"
)

const chromaTheme = "catppuccin-mocha"

type model struct {
	editor editor.Model
}

func (m model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case editor.QuitMsg:
		return m, tea.Quit
	}
	em, cmd := m.editor.Update(msg)
	m.editor = em.(editor.Model)
	return m, cmd
}

func (m model) View() string {
	return m.editor.View()
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gopico_history")
}

func main() {
	cfg := core.SessionConfig{
		HistoryPath: historyPath(),
		TabWidth:    4,
		Wrapping:    true,
		AtBlanks:    true,
		Smooth:      true,
	}
	if os.Getenv("GOPICO_VIEW") != "" {
		cfg.Capabilities = core.ViewCapabilities()
	}

	ed := editor.New(cfg)
	for _, path := range os.Args[1:] {
		if err := ed.OpenFile(path, chromaTheme); err != nil {
			log.Printf("open %s: %v", path, err)
		}
	}

	p := tea.NewProgram(model{editor: ed}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
