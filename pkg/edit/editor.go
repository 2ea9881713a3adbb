// Package edit implements the interactive line editor of the shell on top of
// readline.
package edit

import (
	"io"
	"unicode/utf8"

	"github.com/chzyer/readline"

	"src.treesh.dev/pkg/edit/complete"
	"src.treesh.dev/pkg/edit/highlight"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/store/storedefs"
	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

var logger = logutil.GetLogger("edit")

// CompleteFunc completes code typed while working in the given group.
type CompleteFunc func(code complete.CodeBuffer, working treepath.Path) (*complete.Result, error)

// PathCompleter returns a CompleteFunc that completes the given command names
// and paths known to cache, loading groups through loader as needed.
func PathCompleter[V any](commands []string, cache *treecache.Cache[V], loader complete.Loader[V]) CompleteFunc {
	return func(code complete.CodeBuffer, working treepath.Path) (*complete.Result, error) {
		return complete.Complete(code, complete.Config[V]{
			Commands: commands, Cache: cache, WorkingPath: working, Loader: loader})
	}
}

// Config keeps the configuration of an Editor.
type Config struct {
	// Returns the prompt for the given working group.
	Prompt     func(working treepath.Path) string
	Complete   CompleteFunc
	HasCommand func(name string) bool
	// Where lines are recorded. May be nil.
	History      storedefs.Store
	HistoryLimit int

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// Editor reads command lines from a terminal.
type Editor struct {
	rl       *readline.Instance
	prompt   func(treepath.Path) string
	working  *treepath.Path
	recorder *recorder
}

// NewEditor creates an Editor.
func NewEditor(cfg Config) (*Editor, error) {
	working := treepath.Root()
	rcfg := &readline.Config{
		Prompt:                 cfg.Prompt(working),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
		HistoryLimit:           cfg.HistoryLimit,
		Stdin:                  cfg.Stdin,
		Stdout:                 cfg.Stdout,
		Stderr:                 cfg.Stderr,
	}
	if cfg.Complete != nil {
		rcfg.AutoComplete = &completer{cfg.Complete, &working}
	}
	if cfg.HasCommand != nil {
		rcfg.Painter = highlight.Highlighter{HasCommand: cfg.HasCommand}
	}
	rl, err := readline.NewEx(rcfg)
	if err != nil {
		return nil, err
	}

	ed := &Editor{rl, cfg.Prompt, &working, &recorder{store: cfg.History}}
	for _, line := range loadHistory(cfg.History, cfg.HistoryLimit) {
		if err := rl.SaveHistory(line); err != nil {
			logger.Warn("cannot seed history", "err", err)
			break
		}
	}
	return ed, nil
}

// SetWorkingGroup sets the group used for completion and in the prompt.
func (ed *Editor) SetWorkingGroup(p treepath.Path) {
	*ed.working = p
}

// ReadCode reads a command line. An interrupted line is returned as an empty
// string. At the end of input it returns io.EOF.
func (ed *Editor) ReadCode() (string, error) {
	ed.rl.SetPrompt(ed.prompt(*ed.working))
	line, err := ed.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if ed.recorder.record(line) {
		if err := ed.rl.SaveHistory(line); err != nil {
			logger.Warn("cannot add line to history", "err", err)
		}
	}
	return line, nil
}

// Close restores the terminal.
func (ed *Editor) Close() error {
	return ed.rl.Close()
}

// Adapts a CompleteFunc to readline.AutoCompleter.
type completer struct {
	complete CompleteFunc
	working  *treepath.Path
}

// Do implements readline.AutoCompleter. Readline works with rune offsets,
// while completion works with byte offsets.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	if pos < 0 || pos > len(line) {
		return nil, 0
	}
	content := string(line)
	dot := len(string(line[:pos]))
	result, err := c.complete(complete.CodeBuffer{Content: content, Dot: dot}, *c.working)
	if err != nil {
		return nil, 0
	}
	newLine := make([][]rune, len(result.Items))
	for i, item := range result.Items {
		newLine[i] = []rune(item.Replacement)
	}
	return newLine, utf8.RuneCountInString(content[result.Replace.From:dot])
}
