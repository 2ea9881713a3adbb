package prog_test

import (
	"os"
	"path/filepath"
	"testing"

	. "src.treesh.dev/pkg/prog"
	"src.treesh.dev/pkg/prog/progtest"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/testutil"
)

var (
	Test       = progtest.Test
	ThatTreesh = progtest.ThatTreesh
)

func TestCommonFlagHandling(t *testing.T) {
	dir := testutil.InTempDir(t)
	t.Cleanup(func() { logutil.SetOutputFile("") })

	Test(t, testProgram{},
		ThatTreesh("--bad-flag").
			ExitsWith(2).
			WritesStderrContaining("unknown flag: --bad-flag\nUsage:"),

		ThatTreesh("-h").
			WritesStdoutContaining("Usage: treesh [flags] FILE"),
		ThatTreesh("--help").
			WritesStdoutContaining("--lsp"),

		ThatTreesh("--log", "log.txt").DoesNothing(),
	)

	if _, err := os.Stat(filepath.Join(dir, "log.txt")); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestFlagsAfterArgumentsAreKept(t *testing.T) {
	var got []string
	Test(t, argsProgram{&got}, ThatTreesh("self", "uninstall", "--yes").DoesNothing())
	if len(got) != 3 || got[2] != "--yes" {
		t.Errorf("subprogram got args %q", got)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatTreesh().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatTreesh().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatTreesh().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatTreesh().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatTreesh().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatTreesh().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatTreesh().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type argsProgram struct{ args *[]string }

func (p argsProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	*p.args = args
	return nil
}
