package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"src.treesh.dev/pkg/edit"
	"src.treesh.dev/pkg/treepath"
)

// The interface the line editor has to satisfy. It is needed so that the loop
// in Interact can fall back to minEditor.
type editor interface {
	ReadCode() (string, error)
	SetWorkingGroup(p treepath.Path)
	Close() error
}

// Returns a readline-based editor, or a minEditor if the terminal cannot be
// set up.
func newEditor(sh *Shell, fds [3]*os.File) editor {
	cfg := sh.Env.Config
	ed, err := edit.NewEditor(edit.Config{
		Prompt:       sh.Prompt,
		Complete:     sh.Completer(),
		HasCommand:   sh.Registry.Has,
		History:      sh.Env.Store,
		HistoryLimit: cfg.History.Limit,
		Stdin:        fds[0],
		Stdout:       fds[1],
		Stderr:       fds[2],
	})
	if err != nil {
		logger.Warn("cannot create line editor", "err", err)
		fmt.Fprintln(fds[2], "Falling back to basic line editor")
		return newMinEditor(sh.Prompt, fds[0], fds[2])
	}
	return ed
}

// A line reader without completion, highlighting or history.
type minEditor struct {
	prompt  func(treepath.Path) string
	in      *bufio.Reader
	out     io.Writer
	working treepath.Path
}

func newMinEditor(prompt func(treepath.Path) string, in io.Reader, out io.Writer) *minEditor {
	return &minEditor{prompt, bufio.NewReader(in), out, treepath.Root()}
}

func (ed *minEditor) ReadCode() (string, error) {
	fmt.Fprint(ed.out, ed.prompt(ed.working))
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// The last line is not terminated; return it now and EOF next time.
		err = nil
	}
	return chopLineEnding(line), err
}

func (ed *minEditor) SetWorkingGroup(p treepath.Path) { ed.working = p }

func (ed *minEditor) Close() error { return nil }

func chopLineEnding(s string) string {
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
}
