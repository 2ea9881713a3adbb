// Treesh is an interactive shell for browsing bbolt files, with nested
// buckets shown as groups and keys as leaves.
package main

import (
	"os"

	"src.treesh.dev/pkg/buildinfo"
	"src.treesh.dev/pkg/lsp"
	"src.treesh.dev/pkg/prog"
	"src.treesh.dev/pkg/selfcmd"
	"src.treesh.dev/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			buildinfo.Program{}, selfcmd.Program{}, lsp.Program{}, shell.Program{})))
}
