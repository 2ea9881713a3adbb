package cmds

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/output"
	"src.treesh.dev/pkg/treepath"
)

func findCommand(env *Env) *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "find PATTERN [PATH]",
		Short: "Find groups and leaves by name",
		Long: "Find groups and leaves whose path relative to PATH matches the regular " +
			"expression PATTERN.",
		Example: "  find stem\n  find '^b.*/d' base -r",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := regexp.Compile(args[0])
			if err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}
			return find(cmd, env, pattern, pathArg(args, 1, "."), recursive)
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "search groups recursively")
	return cmd
}

func find(cmd *cobra.Command, env *Env, pattern *regexp.Regexp, arg string, recursive bool) error {
	ctx := cmd.Context()
	typed := treepath.Path(arg)
	target := env.Resolve(arg)
	obj, err := env.File.Load(target)
	if err != nil {
		return err
	}
	if !obj.IsGroup() {
		if pattern.MatchString(arg) {
			printMatch(env, typed, obj)
		}
		return nil
	}

	visit := func(child boltfile.Object) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := child.Path.Rel(target)
		if pattern.MatchString(rel.String()) {
			display := rel
			if typed != "." {
				display = typed.Join(rel)
			}
			printMatch(env, display, child)
		}
		return nil
	}
	if recursive {
		return env.File.Walk(target, visit)
	}
	children, err := env.File.Children(target)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := visit(child); err != nil {
			return err
		}
	}
	return nil
}

func printMatch(env *Env, p treepath.Path, obj boltfile.Object) {
	parent, name := p.SplitParent()
	prefix := ""
	switch {
	case parent == "":
	case parent.HasTrailingSeparator():
		prefix = output.Group(parent.String())
	default:
		prefix = output.Group(parent.String() + "/")
	}
	env.Printer.Println(prefix + output.Name(name, obj.IsGroup()))
}
