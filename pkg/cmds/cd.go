package cmds

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/output"
	"src.treesh.dev/pkg/treepath"
)

func cdCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "cd [PATH]",
		Short: "Change the working group",
		Long:  "Change the working group. Without PATH, change to the root group.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cd(env, pathArg(args, 0, treepath.Root().String()))
		},
	}
}

func cd(env *Env, arg string) error {
	target := env.Resolve(arg)
	obj, err := env.File.Load(target)
	if err != nil {
		return err
	}
	if !obj.IsGroup() {
		return fmt.Errorf("%w: %s", boltfile.ErrNotGroup, target)
	}
	env.Working = target
	if env.Store != nil {
		if err := env.Store.AddGroup(env.File.Name(), target.String(), 1); err != nil {
			logger.Warn("cannot record visited group", "group", target, "err", err)
		}
	}
	return nil
}

func pwdCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the working group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env.Printer.Println(env.Working)
			return nil
		},
	}
}

func dirsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "dirs",
		Short: "List visited groups, most frequent first",
		Long: "List visited groups, most frequent first. Groups that no longer exist in the " +
			"file are removed from the history.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.Store == nil {
				return errHistoryDisabled
			}
			groups, err := env.Store.Groups(env.File.Name())
			if err != nil {
				return err
			}
			var rows [][]string
			for _, g := range groups {
				ok, err := isGroup(env, treepath.Path(g.Path))
				if err != nil {
					return err
				}
				if !ok {
					logger.Info("pruning missing group from history", "group", g.Path)
					if err := env.Store.DelGroup(env.File.Name(), g.Path); err != nil {
						return err
					}
					continue
				}
				rows = append(rows, []string{strconv.FormatFloat(g.Score, 'f', 1, 64), output.Name(g.Path, true)})
			}
			env.Printer.Table([]string{"SCORE", "GROUP"}, rows)
			return nil
		},
	}
}

func isGroup(env *Env, p treepath.Path) (bool, error) {
	obj, err := env.File.Load(p)
	if errors.Is(err, boltfile.ErrNotFound) || errors.Is(err, boltfile.ErrNotGroup) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return obj.IsGroup(), nil
}
