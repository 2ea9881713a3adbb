// Package cmds implements the builtin commands of the shell.
//
// Each command is a constructor for a *cobra.Command. A fresh command is built
// for every invocation, so that flag values never carry over from one run to
// the next.
package cmds

import (
	"context"
	"errors"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/config"
	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/output"
	"src.treesh.dev/pkg/parse"
	"src.treesh.dev/pkg/store/storedefs"
	"src.treesh.dev/pkg/treepath"
)

var logger = logutil.GetLogger("cmds")

// ErrExit is returned by the exit command.
var ErrExit = errors.New("exit")

// UnknownCommand is the Type of the *diag.Error returned by Run for an
// unknown command name. The Message of the error is the name.
const UnknownCommand = "unknown command"

// InteractiveSource is the source name used in errors about lines typed
// interactively.
const InteractiveSource = "[interactive]"

// Env is the state that commands act on.
type Env struct {
	File    *boltfile.File
	Printer *output.Printer
	Config  *config.Config
	// Working group. Relative paths are resolved against it.
	Working treepath.Path
	// Where visited groups are recorded. May be nil.
	Store storedefs.Store
	// Name of the source of command lines, used in error messages.
	Source string
}

// Resolve resolves a path argument against the working group.
func (env *Env) Resolve(arg string) treepath.Path {
	return env.Working.Join(treepath.Path(arg)).Resolve()
}

// Command is a named constructor of a cobra command.
type Command struct {
	Name string
	New  func(env *Env) *cobra.Command
}

// Registry is an ordered set of commands.
type Registry struct {
	commands []Command
	index    map[string]int
}

// NewRegistry creates a Registry with the given commands. Later commands
// replace earlier ones with the same name.
func NewRegistry(commands ...Command) *Registry {
	r := &Registry{index: map[string]int{}}
	for _, c := range commands {
		r.Add(c)
	}
	return r
}

// Default returns a Registry with all builtin commands.
func Default() *Registry {
	r := NewRegistry(
		Command{"ls", lsCommand},
		Command{"cd", cdCommand},
		Command{"pwd", pwdCommand},
		Command{"cat", catCommand},
		Command{"stat", statCommand},
		Command{"find", findCommand},
		Command{"dirs", dirsCommand},
		Command{"history", historyCommand},
		Command{"sessions", sessionsCommand},
		Command{"exit", exitCommand},
	)
	r.Add(Command{"help", helpCommand(r)})
	return r
}

// Add adds a command.
func (r *Registry) Add(c Command) {
	if i, ok := r.index[c.Name]; ok {
		r.commands[i] = c
		return
	}
	r.index[c.Name] = len(r.commands)
	r.commands = append(r.commands, c)
}

// Lookup finds a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	i, ok := r.index[name]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// Has reports whether there is a command with the given name.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns the names of all commands in the order they were added.
func (r *Registry) Names() []string {
	names := make([]string, len(r.commands))
	for i, c := range r.commands {
		names[i] = c.Name
	}
	return names
}

// SortedNames returns the names of all commands in lexicographical order.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

// Suggest returns the names of commands that name is a fuzzy match of, best
// match first.
func (r *Registry) Suggest(name string) []string {
	matches := fuzzy.Find(name, r.Names())
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Str
	}
	return names
}

// Run runs the parsed command line. The source of the line is needed for
// errors that point into it.
//
// An unknown command name results in a *diag.Error. The exit command results
// in ErrExit.
func (r *Registry) Run(ctx context.Context, env *Env, expr parse.Expression, line string) error {
	call, ok := expr.(*parse.Call)
	if !ok {
		return nil
	}
	name := call.Function.Text
	c, ok := r.Lookup(name)
	if !ok {
		source := env.Source
		if source == "" {
			source = InteractiveSource
		}
		return diag.NewError(UnknownCommand, source, line, call.Function, "%s", name)
	}

	cmd := c.New(env)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(env.Printer.Out)
	cmd.SetErr(env.Printer.Err)
	// A nil slice would make cobra read os.Args.
	args := call.Args()
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	logger.Debug("running command", "name", name, "args", args)
	return cmd.ExecuteContext(ctx)
}

func pathArg(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}
