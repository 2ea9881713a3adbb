package cmds

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"src.treesh.dev/pkg/store/storedefs"
)

var errHistoryDisabled = errors.New("history is disabled")

const defaultHistoryEntries = 20

func historyCommand(env *Env) *cobra.Command {
	var (
		n   int
		del int
	)
	cmd := &cobra.Command{
		Use:   "history [PREFIX]",
		Short: "List or delete recorded command lines",
		Long: "List the last -n recorded command lines that start with PREFIX, oldest first. " +
			"With -d, delete the entry with the given number instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.Store == nil {
				return errHistoryDisabled
			}
			if cmd.Flags().Changed("delete") {
				if len(args) > 0 {
					return fmt.Errorf("-d does not take a prefix")
				}
				return deleteHistory(env, del)
			}
			if n < 0 {
				return fmt.Errorf("invalid number of entries: %d", n)
			}
			return listHistory(env, pathArg(args, 0, ""), n)
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", defaultHistoryEntries, "number of entries to list; 0 lists all")
	cmd.Flags().IntVarP(&del, "delete", "d", 0, "delete the entry with this number")
	return cmd
}

func listHistory(env *Env, prefix string, n int) error {
	upto, err := env.Store.NextCmdSeq()
	if err != nil {
		return err
	}
	var entries []storedefs.Cmd
	for n == 0 || len(entries) < n {
		c, err := env.Store.PrevCmd(upto, prefix)
		if errors.Is(err, storedefs.ErrNoMatchingCmd) {
			break
		} else if err != nil {
			return err
		}
		entries = append(entries, c)
		upto = c.Seq
	}
	slices.Reverse(entries)
	for _, c := range entries {
		env.Printer.Printf("%5d  %s\n", c.Seq, c.Text)
	}
	return nil
}

func deleteHistory(env *Env, seq int) error {
	text, err := env.Store.Cmd(seq)
	if errors.Is(err, storedefs.ErrNoMatchingCmd) {
		return fmt.Errorf("no history entry %d", seq)
	} else if err != nil {
		return err
	}
	if err := env.Store.DelCmd(seq); err != nil {
		return err
	}
	env.Printer.Printf("deleted %d: %s\n", seq, text)
	return nil
}

func sessionsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List past sessions of this file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.Store == nil {
				return errHistoryDisabled
			}
			sessions, err := env.Store.Sessions()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, s := range sessions {
				if s.File != env.File.Name() {
					continue
				}
				rows = append(rows, []string{
					strconv.Itoa(len(rows) + 1), s.Start.Local().Format("2006-01-02 15:04:05"), s.ID})
			}
			env.Printer.Table([]string{"#", "STARTED", "ID"}, rows)
			return nil
		},
	}
}
