package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxHistorySize limits the number of entries stored in history.
const maxHistorySize = 100

// InputLine is the single-line command prompt with history navigation.
type InputLine struct {
	input textinput.Model

	// Input history for up/down navigation
	history      []string
	historyIndex int    // -1 means not browsing history; 0+ is index into history
	savedInput   string // Saved current input when browsing history
}

// NewInputLine creates a focused prompt.
func NewInputLine() InputLine {
	ti := textinput.New()
	ti.Placeholder = "help"
	ti.CharLimit = 256
	ti.Prompt = "🦊 > "
	ti.PromptStyle = promptStyle
	ti.PlaceholderStyle = placeholderStyle
	ti.Focus()
	return InputLine{
		input:        ti,
		historyIndex: -1,
	}
}

// SetWidth updates the visible width of the input.
func (i *InputLine) SetWidth(width int) {
	i.input.Width = max(width-8, 1) // prompt and cursor
}

// Update handles input events and returns a command.
func (i *InputLine) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd
}

// Value returns the current input value.
func (i *InputLine) Value() string {
	return i.input.Value()
}

// SetValue replaces the current input value.
func (i *InputLine) SetValue(s string) {
	i.input.SetValue(s)
	i.input.CursorEnd()
}

// Clear resets the input value.
func (i *InputLine) Clear() {
	i.input.SetValue("")
}

// View renders the input line.
func (i InputLine) View() string {
	return i.input.View()
}

// History returns a copy of the history, oldest first.
func (i *InputLine) History() []string {
	return append([]string(nil), i.history...)
}

// SetHistory replaces the history, keeping the newest maxHistorySize entries.
func (i *InputLine) SetHistory(entries []string) {
	if len(entries) > maxHistorySize {
		entries = entries[len(entries)-maxHistorySize:]
	}
	i.history = append([]string(nil), entries...)
	i.ResetHistoryNavigation()
}

// AddToHistory adds the given input to history if non-empty.
// It reports whether the history changed.
func (i *InputLine) AddToHistory(input string) bool {
	i.ResetHistoryNavigation()
	if input == "" {
		return false
	}
	// Avoid duplicates at the end
	if len(i.history) > 0 && i.history[len(i.history)-1] == input {
		return false
	}
	i.history = append(i.history, input)
	if len(i.history) > maxHistorySize {
		i.history = i.history[len(i.history)-maxHistorySize:]
	}
	return true
}

// HistoryUp navigates to the previous (older) history entry.
// Returns true if the input was changed.
func (i *InputLine) HistoryUp() bool {
	if len(i.history) == 0 {
		return false
	}

	switch {
	case i.historyIndex == -1:
		i.savedInput = i.input.Value()
		i.historyIndex = len(i.history) - 1
	case i.historyIndex > 0:
		i.historyIndex--
	default:
		return false
	}

	i.SetValue(i.history[i.historyIndex])
	return true
}

// HistoryDown navigates to the next (newer) history entry.
// Returns true if the input was changed.
func (i *InputLine) HistoryDown() bool {
	if i.historyIndex == -1 {
		return false
	}

	if i.historyIndex < len(i.history)-1 {
		i.historyIndex++
		i.SetValue(i.history[i.historyIndex])
		return true
	}

	// At newest entry, restore saved input
	i.historyIndex = -1
	i.SetValue(i.savedInput)
	i.savedInput = ""
	return true
}

// ResetHistoryNavigation resets history browsing state.
func (i *InputLine) ResetHistoryNavigation() {
	i.historyIndex = -1
	i.savedInput = ""
}
