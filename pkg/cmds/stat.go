package cmds

import (
	"github.com/spf13/cobra"
)

func statCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stat [PATH]",
		Short: "Show metadata of a group or leaf",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := env.Resolve(pathArg(args, 0, "."))
			st, err := env.File.Stat(target)
			if err != nil {
				return err
			}
			env.Printer.Printf("Path:   %s\n", st.Path)
			env.Printer.Printf("Kind:   %s\n", st.Kind)
			if st.IsGroup() {
				env.Printer.Printf("Keys:   %d\n", st.Keys)
				env.Printer.Printf("Groups: %d\n", st.Groups)
				env.Printer.Printf("Depth:  %d\n", st.Depth)
			} else {
				env.Printer.Printf("Size:   %d\n", st.Size)
			}
			return nil
		},
	}
}
