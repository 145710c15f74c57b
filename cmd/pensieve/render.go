package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/zephyrtronium/pensieve"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid color value %q (expected auto|on|off)", value)
	}
}

// useColor decides whether output to f is colored.
func useColor(mode colorMode, f *os.File) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(f)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// palette holds the colors of each kind of output.
type palette struct {
	on bool

	errc   *color.Color
	note   *color.Color
	debug  *color.Color
	value  *color.Color
	prompt *color.Color
}

func newPalette(on bool) palette {
	p := palette{
		on:     on,
		errc:   color.New(color.FgRed),
		note:   color.New(color.FgMagenta),
		debug:  color.New(color.FgYellow),
		value:  color.New(color.FgGreen),
		prompt: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.errc, p.note, p.debug, p.value, p.prompt} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func tf(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// renderTable draws a truth table with one column per variable and a last
// column headed by the expression.
func renderTable(tt *pensieve.TruthTable, header string, p palette) string {
	headers := append(tt.Vars(), header)
	last := len(headers) - 1
	cell := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	head := cell
	result := cell
	if p.on {
		head = cell.Bold(true)
		result = cell.Foreground(lipgloss.Color("2"))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return head
			case col == last:
				return result
			default:
				return cell
			}
		})
	for row := 0; row < tt.Rows(); row++ {
		cells := make([]string, 0, len(headers))
		for _, v := range tt.Row(row) {
			cells = append(cells, tf(v))
		}
		cells = append(cells, tf(tt.Results[row]))
		t.Row(cells...)
	}
	return t.String()
}
