package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"src.treesh.dev/pkg/cmds"
	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/parse"
)

// How long Interact waits before retrying after an error from the basic line
// editor. It doubles after each consecutive failure, up to a minute.
var restartCooldown = time.Second

// Interact runs an interactive session, reading lines from ed until the end
// of input or the exit command. The editor is closed when Interact returns.
func Interact(ctx context.Context, sh *Shell, fds [3]*os.File, ed editor) {
	defer func() { ed.Close() }()

	cooldown := restartCooldown
	cmdNum := 0

	for {
		ed.SetWorkingGroup(sh.Working())
		cmdNum++

		line, err := ed.ReadCode()

		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); !isMinEditor {
				fmt.Fprintln(fds[2], "Falling back to basic line editor")
				ed.Close()
				ed = newMinEditor(sh.Prompt, fds[0], fds[2])
			} else {
				fmt.Fprintln(fds[2], "Don't know what to do, pid is", os.Getpid())
				fmt.Fprintln(fds[2], "Restarting editor in", cooldown)
				time.Sleep(cooldown)
				if cooldown < time.Minute {
					cooldown *= 2
				}
			}
			continue
		}

		// No error; reset cooldown.
		cooldown = restartCooldown

		err = sh.Exec(ctx, fmt.Sprintf("[tty %v]", cmdNum), line)
		if errors.Is(err, cmds.ErrExit) {
			break
		}
		if err != nil {
			sh.ShowError(fds[2], err)
		}
	}
}

// RunScript runs the lines read from in as commands, one per line, showing
// errors on stderr. It returns the exit status: 0 if all commands succeeded
// and 1 otherwise.
func RunScript(ctx context.Context, sh *Shell, in io.Reader, stderr io.Writer) int {
	code, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(stderr, "cannot read input:", err)
		return 1
	}
	status := 0
	for i, line := range parse.SplitLines(string(code)) {
		if ctx.Err() != nil {
			diag.ShowError(stderr, ctx.Err())
			return 1
		}
		err := sh.Exec(ctx, fmt.Sprintf("[stdin %v]", i+1), line.Text)
		if errors.Is(err, cmds.ErrExit) {
			break
		}
		if err != nil {
			sh.ShowError(stderr, err)
			status = 1
		}
	}
	return status
}
