package launcher

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/tessro/ffl/internal/lifecycle"
)

const (
	nameWidth  = 24
	modeWidth  = 8
	stateWidth = 13
	pidWidth   = 8

	focusMarker = "*"
)

// listWriter renders the list command. Colors are only emitted when the
// output is a terminal.
type listWriter struct {
	out io.Writer

	header    lipgloss.Style
	name      lipgloss.Style
	focused   lipgloss.Style
	stateDown lipgloss.Style
	stateUp   lipgloss.Style
	stateIdle lipgloss.Style
	stateMove lipgloss.Style
}

func newListWriter(out io.Writer) *listWriter {
	r := lipgloss.NewRenderer(out)
	return &listWriter{
		out:       out,
		header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("8")),
		name:      r.NewStyle().Bold(true),
		focused:   r.NewStyle().Foreground(lipgloss.Color("11")),
		stateDown: r.NewStyle().Foreground(lipgloss.Color("8")),
		stateUp:   r.NewStyle().Foreground(lipgloss.Color("10")),
		stateIdle: r.NewStyle().Foreground(lipgloss.Color("12")),
		stateMove: r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (w *listWriter) write(instances []*lifecycle.Instance) {
	fmt.Fprintln(w.out, w.header.Render(
		cell("PROFILE", nameWidth)+cell("MODE", modeWidth)+cell("STATE", stateWidth)+cell("PID", pidWidth)))

	for _, in := range instances {
		pid := "-"
		if in.PID != 0 {
			pid = strconv.Itoa(in.PID)
		}
		marker := ""
		if in.Focused {
			marker = w.focused.Render(focusMarker)
		}
		fmt.Fprintln(w.out,
			w.name.Render(cell(in.Name, nameWidth))+
				cell(in.Mode.String(), modeWidth)+
				w.stateStyle(in.State).Render(cell(in.State.String(), stateWidth))+
				cell(pid, pidWidth)+
				marker)
	}
}

func (w *listWriter) stateStyle(s lifecycle.State) lipgloss.Style {
	switch s {
	case lifecycle.Down:
		return w.stateDown
	case lifecycle.Warming, lifecycle.Warmed:
		return w.stateUp
	case lifecycle.Suspended:
		return w.stateIdle
	default:
		return w.stateMove
	}
}

// cell truncates s to width-1 and pads it to width, leaving one space
// between columns.
func cell(s string, width int) string {
	return padding.String(truncate.StringWithTail(s, uint(width-1), "…"), uint(width))
}
