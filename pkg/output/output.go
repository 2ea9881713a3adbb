// Package output formats command output for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"src.treesh.dev/pkg/env"
	"src.treesh.dev/pkg/sys"
)

// Color modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// SetColorMode turns colored output on or off. In ColorAuto mode, color is
// used when out is a terminal.
func SetColorMode(mode string, out *os.File) error {
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto, "":
		color.NoColor = os.Getenv(env.NO_COLOR) != "" || !sys.IsATTY(out.Fd())
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

var (
	groupStyle = color.New(color.FgBlue, color.Bold)
	errorStyle = color.New(color.FgRed)
	faintStyle = color.New(color.Faint)
)

// Name formats the name of an object. Group names are colored and followed by
// a slash unless they already end in one.
func Name(name string, isGroup bool) string {
	if isGroup {
		if !strings.HasSuffix(name, "/") {
			name += "/"
		}
		return groupStyle.Sprint(name)
	}
	return name
}

// Group formats the parent part of a path in the group color.
func Group(s string) string { return groupStyle.Sprint(s) }

// Faint formats secondary information.
func Faint(s string) string { return faintStyle.Sprint(s) }

// Printer writes command output.
type Printer struct {
	Out io.Writer
	Err io.Writer
	// Width of Out in columns, used for laying out grids.
	Width int
}

// NewPrinter creates a Printer. The width is taken from out if it is a
// terminal.
func NewPrinter(out, err io.Writer) *Printer {
	width := sys.DefaultWidth
	if f, ok := out.(*os.File); ok {
		width = sys.TermWidth(f)
	}
	return &Printer{out, err, width}
}

// Println writes a line to Out.
func (p *Printer) Println(a ...any) { fmt.Fprintln(p.Out, a...) }

// Printf writes to Out.
func (p *Printer) Printf(format string, a ...any) { fmt.Fprintf(p.Out, format, a...) }

// Errorf writes an error message to Err. A newline is appended.
func (p *Printer) Errorf(format string, a ...any) {
	fmt.Fprintln(p.Err, errorStyle.Sprintf(format, a...))
}

const gridGap = 2

// Grid writes names in columns, filled top to bottom, using as few rows as
// fit in the width of the printer. Names may contain escape sequences.
func (p *Printer) Grid(names []string) {
	if len(names) == 0 {
		return
	}
	rows, widths := gridLayout(names, p.Width)
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c*rows+r < len(names); c++ {
			name := names[c*rows+r]
			sb.WriteString(name)
			if c == len(widths)-1 || (c+1)*rows+r >= len(names) {
				break
			}
			sb.WriteString(strings.Repeat(" ", widths[c]-lipgloss.Width(name)+gridGap))
		}
		sb.WriteByte('\n')
	}
	io.WriteString(p.Out, sb.String())
}

// Returns the number of rows and the width of each column. A single column is
// used when even that does not fit.
func gridLayout(names []string, width int) (int, []int) {
	for rows := 1; rows < len(names); rows++ {
		widths := columnWidths(names, rows)
		total := gridGap * (len(widths) - 1)
		for _, w := range widths {
			total += w
		}
		if total <= width {
			return rows, widths
		}
	}
	return len(names), columnWidths(names, len(names))
}

func columnWidths(names []string, rows int) []int {
	widths := make([]int, (len(names)+rows-1)/rows)
	for i, name := range names {
		widths[i/rows] = max(widths[i/rows], lipgloss.Width(name))
	}
	return widths
}

// Table writes a bordered table.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		})
	fmt.Fprintln(p.Out, t.String())
}
