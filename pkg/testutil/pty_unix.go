//go:build !windows

package testutil

import (
	"os"

	"github.com/creack/pty"

	"src.treesh.dev/pkg/must"
)

// OpenPty opens a pseudo terminal of the given size, closing both ends after
// the test finishes. The tty end is what a program under test should use as a
// terminal.
//
// It panics if the terminal cannot be opened. It is only suitable for use in
// tests.
func OpenPty(c Cleanuper, cols, rows uint16) (ptmx, tty *os.File) {
	ptmx, tty = must.OK2(pty.Open())
	c.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	must.OK(pty.Setsize(ptmx, &pty.Winsize{Cols: cols, Rows: rows}))
	return ptmx, tty
}
