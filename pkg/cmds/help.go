package cmds

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var commandNameStyle = color.New(color.FgBlue)

func helpCommand(r *Registry) func(*Env) *cobra.Command {
	return func(env *Env) *cobra.Command {
		return &cobra.Command{
			Use:   "help",
			Short: "Print available commands",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				names := r.SortedNames()
				width := 0
				for _, name := range names {
					width = max(width, len(name))
				}
				for _, name := range names {
					c, _ := r.Lookup(name)
					padded := fmt.Sprintf("%-*s", width, name)
					env.Printer.Printf("%s  %s\n", commandNameStyle.Sprint(padded), c.New(env).Short)
				}
				return nil
			},
		}
	}
}

func exitCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "Leave the shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ErrExit
		},
	}
}
