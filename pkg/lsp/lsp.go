// Package lsp implements a language server for treesh command scripts.
//
// A script has one command per line. The server completes command names and
// paths in the store file given on the command line, and reports unknown
// commands.
package lsp

import (
	"context"
	"fmt"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/cmds"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/prog"
)

var logger = logutil.GetLogger("lsp")

// Program is the LSP subprogram.
type Program struct{}

// Run serves LSP on stdin and stdout if the --lsp flag is given.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.LSP {
		return prog.ErrNotSuitable
	}
	if len(args) != 1 {
		return prog.BadUsage("--lsp requires exactly one store file")
	}
	file, err := boltfile.Open(args[0])
	if err != nil {
		fmt.Fprintf(fds[2], "cannot open %s: %v\n", args[0], err)
		return prog.Exit(1)
	}
	defer file.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newServer(cmds.Default(), file)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	logger.Info("serving", "file", args[0])
	<-conn.DisconnectNotify()
	return nil
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
