package profile

import (
	"fmt"
	"strings"
)

// Mode is the user-declared activity intent for a profile.
type Mode int

const (
	// ModeAsIs leaves the profile alone. It is the zero value so that
	// profiles without configuration are never touched.
	ModeAsIs Mode = iota
	// ModeAuto keeps the profile running and suspends it while unfocused.
	ModeAuto
	// ModeOn keeps the profile running.
	ModeOn
	// ModeOff keeps the profile closed.
	ModeOff
	// ModeSuspend keeps the profile running but stopped.
	ModeSuspend
	// ModeNone is the "unspecified" value accepted in mode configuration.
	// It is normalized to ModeAsIs at load time and never stored as a live mode.
	ModeNone
)

var modeNames = map[Mode]string{
	ModeAsIs:    "AsIs",
	ModeAuto:    "Auto",
	ModeOn:      "On",
	ModeOff:     "Off",
	ModeSuspend: "Suspend",
	ModeNone:    "None",
}

// LiveModes lists the modes a profile can hold at runtime, in help order.
var LiveModes = []Mode{ModeAuto, ModeOn, ModeOff, ModeSuspend, ModeAsIs}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Normalize maps ModeNone to ModeAsIs.
func (m Mode) Normalize() Mode {
	if m == ModeNone {
		return ModeAsIs
	}
	return m
}

// ParseMode parses a mode typed on the command surface (case-insensitive).
// "none" is rejected: it is only meaningful in configuration files.
func ParseMode(s string) (Mode, error) {
	m, err := parseAny(s)
	if err != nil {
		return 0, err
	}
	if m == ModeNone {
		return 0, fmt.Errorf("no such mode %q", s)
	}
	return m, nil
}

func parseAny(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("no such mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseMode it
// accepts "None".
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := parseAny(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
