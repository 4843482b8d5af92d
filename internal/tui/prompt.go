// Package tui provides the interactive command prompt for the launcher.
package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the prompt.
type Options struct {
	// Submit receives every non-blank line the user enters.
	Submit func(line string)

	// HistoryPath persists the prompt history. Empty disables persistence.
	HistoryPath string
}

// Model is the bubbletea model for the prompt.
type Model struct {
	input       InputLine
	helpBar     HelpBar
	keys        KeyBindings
	submit      func(string)
	historyPath string
}

// printMsg asks the model to print text above the prompt.
type printMsg string

// New creates the prompt model, loading any saved history.
func New(opts Options) Model {
	keys := DefaultKeyBindings()
	m := Model{
		input:       NewInputLine(),
		helpBar:     NewHelpBar(keys),
		keys:        keys,
		submit:      opts.Submit,
		historyPath: opts.HistoryPath,
	}
	if m.submit == nil {
		m.submit = func(string) {}
	}
	if m.historyPath != "" {
		entries, err := LoadHistory(m.historyPath)
		if err != nil {
			slog.Warn("load history failed", "path", m.historyPath, "error", err)
		}
		m.input.SetHistory(entries)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case printMsg:
		return m, tea.Println(string(msg))

	case tea.WindowSizeMsg:
		m.input.SetWidth(msg.Width)
		m.helpBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m, m.submitLine()
		case key.Matches(msg, m.keys.Cancel):
			m.input.Clear()
			m.input.ResetHistoryNavigation()
			return m, nil
		case key.Matches(msg, m.keys.HistoryUp):
			m.input.HistoryUp()
			return m, nil
		case key.Matches(msg, m.keys.HistoryDown):
			m.input.HistoryDown()
			return m, nil
		}
	}

	cmd := m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return m.input.View() + "\n" + m.helpBar.View()
}

func (m *Model) submitLine() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	m.input.Clear()
	if line == "" {
		m.input.ResetHistoryNavigation()
		return nil
	}

	if m.input.AddToHistory(line) && m.historyPath != "" {
		if err := SaveHistory(m.historyPath, m.input.History()); err != nil {
			slog.Warn("save history failed", "path", m.historyPath, "error", err)
		}
	}
	m.submit(line)
	return tea.Println(echoStyle.Render("> " + line))
}

// Writer prints everything written to it above the prompt of p.
type Writer struct {
	p *tea.Program
}

// NewWriter returns a Writer for p. Writes after p has exited are dropped.
func NewWriter(p *tea.Program) *Writer {
	return &Writer{p: p}
}

func (w *Writer) Write(b []byte) (int, error) {
	w.p.Send(printMsg(strings.TrimRight(string(b), "\n")))
	return len(b), nil
}

// NewProgram creates the inline (non-fullscreen) prompt program.
func NewProgram(m Model) *tea.Program {
	return tea.NewProgram(m)
}
