// Package sys provide system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is the width assumed for outputs that are not terminals.
const DefaultWidth = 80

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TermWidth returns the number of columns of the terminal referenced by file,
// or DefaultWidth if file is not a terminal.
func TermWidth(file *os.File) int {
	w, _, err := term.GetSize(int(file.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
