// Package selfcmd implements the "treesh self" subprogram, which manages the
// treesh binary itself.
package selfcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"

	"src.treesh.dev/pkg/buildinfo"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/prog"
)

var logger = logutil.GetLogger("selfcmd")

// Repository coordinates used when checking for updates.
const (
	Owner      = "treesh"
	Repository = "treesh"
)

// ErrAborted is returned when the user declines a confirmation.
var ErrAborted = errors.New("aborted")

// Indirections replaced in tests.
var (
	checkLatest = func(version string) (*latest.CheckResponse, error) {
		return latest.Check(&latest.GithubTag{Owner: Owner, Repository: Repository}, version)
	}
	confirm = func(in io.ReadCloser, out io.WriteCloser, label string) (bool, error) {
		p := promptui.Prompt{Label: label, IsConfirm: true, Stdin: in, Stdout: out}
		_, err := p.Run()
		if err == promptui.ErrAbort {
			return false, nil
		}
		return err == nil, err
	}
	executable = os.Executable
)

// Program is the self subprogram.
type Program struct{}

// Run runs the program if the first argument is "self".
func (Program) Run(fds [3]*os.File, _ *prog.Flags, args []string) error {
	if len(args) == 0 || args[0] != "self" {
		return prog.ErrNotSuitable
	}
	cmd := newCommand(fds)
	cmd.SetArgs(append([]string{}, args[1:]...))
	return cmd.ExecuteContext(context.Background())
}

// noArgs is cobra.NoArgs with its error reported as bad usage.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return prog.BadUsage(err.Error())
	}
	return nil
}

func newCommand(fds [3]*os.File) *cobra.Command {
	root := &cobra.Command{
		Use:           "self",
		Short:         "Manage the treesh binary",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return prog.BadUsage("missing subcommand")
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return prog.BadUsage(err.Error())
	})
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(fds[0])
	root.SetOut(fds[1])
	root.SetErr(fds[2])

	root.AddCommand(&cobra.Command{
		Use:   "check-update",
		Short: "Check whether a newer release is available",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkUpdate(cmd.OutOrStdout(), buildinfo.Value.Version)
		},
	})

	var yes bool
	uninstall := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the treesh binary",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return uninstallSelf(fds, yes)
		},
	}
	uninstall.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	root.AddCommand(uninstall)
	return root
}

func checkUpdate(out io.Writer, version string) error {
	res, err := checkLatest(version)
	if err != nil {
		logger.Warn("update check failed", "error", err)
		return fmt.Errorf("cannot check for updates: %w", err)
	}
	if res.Outdated {
		fmt.Fprintf(out, "A new version is available: %s (you have %s)\n", res.Current, version)
	} else {
		fmt.Fprintf(out, "You are using the latest version: %s\n", version)
	}
	return nil
}

func uninstallSelf(fds [3]*os.File, yes bool) error {
	path, err := executable()
	if err != nil {
		return err
	}
	if !yes {
		ok, err := confirm(fds[0], fds[1], fmt.Sprintf("Remove %s", path))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	logger.Info("removed binary", "path", path)
	fmt.Fprintf(fds[1], "Removed %s\n", path)
	return nil
}
