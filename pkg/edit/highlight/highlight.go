// Package highlight colors treesh command lines as they are being typed.
package highlight

import (
	"strings"

	"github.com/fatih/color"

	"src.treesh.dev/pkg/parse"
)

var (
	knownCommandStyle   = color.New(color.FgWhite, color.Bold)
	unknownCommandStyle = color.New(color.FgRed)
	flagStyle           = color.New(color.FgYellow)
)

// Highlighter colors command lines. The zero value treats every command as
// unknown.
type Highlighter struct {
	// Reports whether a command with the given name exists.
	HasCommand func(name string) bool
}

// Highlight returns line with styling added. Removing the styling yields
// line again.
func (h Highlighter) Highlight(line string) string {
	call, ok := parse.Parse(line).(*parse.Call)
	if !ok {
		return line
	}
	var sb strings.Builder
	sb.WriteString(line[:call.Function.From])
	if h.HasCommand != nil && h.HasCommand(call.Function.Text) {
		sb.WriteString(knownCommandStyle.Sprint(call.Function.Text))
	} else {
		sb.WriteString(unknownCommandStyle.Sprint(call.Function.Text))
	}
	last := call.Function.To
	for _, arg := range call.Arguments {
		sb.WriteString(line[last:arg.From])
		if arg.IsFlag() {
			sb.WriteString(flagStyle.Sprint(arg.Text))
		} else {
			sb.WriteString(arg.Text)
		}
		last = arg.To
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// Paint implements readline.Painter.
func (h Highlighter) Paint(line []rune, _ int) []rune {
	return []rune(h.Highlight(string(line)))
}
