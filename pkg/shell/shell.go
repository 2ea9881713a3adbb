// Package shell is the entry point for the interactive interface of treesh.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/cmds"
	"src.treesh.dev/pkg/config"
	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/edit"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/output"
	"src.treesh.dev/pkg/parse"
	"src.treesh.dev/pkg/prog"
	"src.treesh.dev/pkg/store"
	"src.treesh.dev/pkg/store/storedefs"
	"src.treesh.dev/pkg/sys"
	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

var logger = logutil.GetLogger("shell")

// Program is the shell subprogram.
type Program struct{}

// Run runs the shell on the store file named by args, which is either "FILE"
// or "open FILE".
func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	name, err := fileArg(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(f.Config)
	if err != nil {
		fmt.Fprintln(fds[2], err)
		return prog.Exit(1)
	}
	colorMode := cfg.Color
	if f.NoColor {
		colorMode = output.ColorNever
	}
	if err := output.SetColorMode(colorMode, fds[1]); err != nil {
		fmt.Fprintln(fds[2], err)
		return prog.Exit(1)
	}

	file, err := boltfile.Open(name)
	if err != nil {
		fmt.Fprintf(fds[2], "cannot open %s: %v\n", name, err)
		return prog.Exit(1)
	}
	defer file.Close()

	var st storedefs.Store
	if cfg.History.Enabled {
		if dbStore := openStore(name); dbStore != nil {
			defer dbStore.Close()
			st = dbStore
		}
	}

	sh := New(file, cfg, output.NewPrinter(fds[1], fds[2]), st)
	stop := initSignal(fds[2])
	defer stop()

	ctx := context.Background()
	if sys.IsATTY(fds[0].Fd()) {
		Interact(ctx, sh, fds, newEditor(sh, fds))
		return nil
	}
	return prog.Exit(RunScript(ctx, sh, fds[0], fds[2]))
}

func fileArg(args []string) (string, error) {
	switch {
	case len(args) == 1 && args[0] != "open":
		return args[0], nil
	case len(args) == 2 && args[0] == "open":
		return args[1], nil
	case len(args) == 0:
		return "", prog.BadUsage("missing store file")
	default:
		return "", prog.BadUsage("expected FILE or open FILE")
	}
}

// Opens the history store, or returns nil if it is not available.
func openStore(file string) store.DBStore {
	path, err := DBPath()
	if err != nil {
		logger.Warn("no history store", "err", err)
		return nil
	}
	st, err := store.NewStore(path)
	if err != nil {
		logger.Warn("cannot open history store", "path", path, "err", err)
		return nil
	}
	if session, err := st.AddSession(file); err != nil {
		logger.Warn("cannot record session", "err", err)
	} else {
		logger.Info("started session", "id", session.ID, "file", file)
	}
	return st
}

// Shell keeps the state of a session over one store file.
type Shell struct {
	Env      *cmds.Env
	Registry *cmds.Registry
	// Objects seen by completion. The store file is opened read-only, so
	// entries never go stale.
	Cache *treecache.Cache[boltfile.Object]
}

// New creates a Shell. The store may be nil.
func New(file *boltfile.File, cfg *config.Config, p *output.Printer, st storedefs.Store) *Shell {
	cache := treecache.New[boltfile.Object]()
	cache.InsertGroup(treepath.Root(), boltfile.Object{Path: treepath.Root(), Kind: boltfile.Group})
	env := &cmds.Env{
		File: file, Printer: p, Config: cfg, Working: treepath.Root(), Store: st}
	return &Shell{env, cmds.Default(), cache}
}

// ResolvePath resolves p against the working group.
func (sh *Shell) ResolvePath(p treepath.Path) treepath.Path {
	return sh.Env.Working.Join(p).Resolve()
}

// Working returns the working group.
func (sh *Shell) Working() treepath.Path { return sh.Env.Working }

// Exec runs one command line. The source name is used in errors that point
// into the line.
func (sh *Shell) Exec(ctx context.Context, source, line string) error {
	sh.Env.Source = source
	return sh.Registry.Run(ctx, sh.Env, parse.Parse(line), line)
}

// ShowError shows an error from Exec. An unknown command is followed by the
// commands with similar names, if any.
func (sh *Shell) ShowError(w io.Writer, err error) {
	diag.ShowError(w, err)
	var derr *diag.Error
	if errors.As(err, &derr) && derr.Type == cmds.UnknownCommand {
		if names := sh.Registry.Suggest(derr.Message); len(names) > 0 {
			fmt.Fprintf(w, "did you mean %s?\n", strings.Join(names, ", "))
		}
	}
}

// Prompt returns the prompt for the given working group.
func (sh *Shell) Prompt(working treepath.Path) string {
	return sh.Env.Config.FormatPrompt(sh.Env.File.Name(), working.String())
}

// Completer returns the completion function used by the line editor.
func (sh *Shell) Completer() edit.CompleteFunc {
	return edit.PathCompleter[boltfile.Object](sh.Registry.Names(), sh.Cache, sh.Env.File)
}
