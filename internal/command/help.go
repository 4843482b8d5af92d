package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/padding"
)

// Entry is one row of a help table.
type Entry struct {
	Text        string
	Description string
}

// Commands lists the prompt commands in help order.
var Commands = []Entry{
	{"exit", "Exit from the launcher"},
	{"quit", "Exit from the launcher"},
	{"list", "Show profiles, modes and states"},
	{"set <profile> <mode>", "Set mode"},
	{"shutdown", "Shut down every browser"},
	{"help", "Show this help"},
}

// Modes lists the modes accepted by set, in help order.
var Modes = []Entry{
	{"auto", "Suspend when not focused"},
	{"on", "Always on"},
	{"off", "Always off"},
	{"suspend", "Always suspended"},
	{"asis", "Leave it as is"},
}

// WriteHelp writes the command table, then the mode table.
func WriteHelp(w io.Writer) {
	writeTable(w, Commands)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "modes")
	fmt.Fprintln(w, strings.Repeat("-", 22))
	writeTable(w, Modes)
}

// writeTable left-aligns entries in two columns separated by two spaces.
func writeTable(w io.Writer, entries []Entry) {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Text))
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", padding.String(e.Text, uint(width)), e.Description)
	}
}
