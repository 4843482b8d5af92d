package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpBar shows the prompt's keyboard shortcuts below the input.
type HelpBar struct {
	width int
	keys  KeyBindings
}

// NewHelpBar creates a new help bar component.
func NewHelpBar(keys KeyBindings) HelpBar {
	return HelpBar{keys: keys}
}

// SetWidth updates the help bar width.
func (h *HelpBar) SetWidth(width int) {
	h.width = width
}

// View renders the help bar.
func (h HelpBar) View() string {
	bindings := []key.Binding{h.keys.Submit, h.keys.HistoryUp, h.keys.HistoryDown, h.keys.Cancel, h.keys.Quit}
	style := statusStyle
	if h.width > 0 {
		style = style.MaxWidth(h.width)
	}
	return style.Render(formatHelp(bindings))
}

// formatHelp formats a list of key bindings as help text.
func formatHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+": "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
