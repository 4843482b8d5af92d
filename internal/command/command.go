// Package command parses the free-text lines typed at the launcher prompt.
package command

import "strings"

// Command is one parsed prompt line. The concrete types are Set, List,
// Shutdown, Exit, Help and Unknown.
type Command interface {
	isCommand()
}

// Set changes the mode of one profile. Mode is the raw text typed by the
// user; it is validated by the loop so an unknown profile is reported first.
type Set struct {
	Name string
	Mode string
}

// List prints every managed profile.
type List struct{}

// Shutdown switches every profile to Off.
type Shutdown struct{}

// Exit stops the launcher. Both "exit" and "quit" produce it.
type Exit struct{}

// Help prints the command and mode tables.
type Help struct{}

// Unknown is any line that does not match a command.
type Unknown struct {
	Text string
}

func (Set) isCommand()      {}
func (List) isCommand()     {}
func (Shutdown) isCommand() {}
func (Exit) isCommand()     {}
func (Help) isCommand()     {}
func (Unknown) isCommand()  {}

// Parse converts a line into a Command. Blank lines return ok=false and
// should be ignored.
func Parse(line string) (cmd Command, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}

	switch {
	case len(fields) == 3 && fields[0] == "set":
		return Set{Name: fields[1], Mode: fields[2]}, true
	case len(fields) == 1:
		switch fields[0] {
		case "list":
			return List{}, true
		case "shutdown":
			return Shutdown{}, true
		case "exit", "quit":
			return Exit{}, true
		case "help":
			return Help{}, true
		}
	}
	return Unknown{Text: strings.TrimSpace(line)}, true
}
