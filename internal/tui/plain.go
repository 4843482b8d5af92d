package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunPlain reads lines from r and passes every non-blank one to submit
// until r reaches EOF. It is used when stdin is not a terminal.
func RunPlain(r io.Reader, submit func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			submit(line)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}
