package diag

import (
	"testing"

	"github.com/fatih/color"

	"src.treesh.dev/pkg/testutil"
)

var contextShowTests = []struct {
	Name    string
	Context *Context
	Indent  string

	WantShow        string
	WantShowCompact string
}{
	{
		Name:    "single-line culprit",
		Context: NewContext("[tty 1]", "lx /a", Ranging{0, 2}),
		Indent:  "_",

		WantShow:        "[tty 1], line 1, column 1:\n_lx /a",
		WantShowCompact: "[tty 1], line 1, column 1: lx /a",
	},
	{
		Name:    "culprit on second line",
		Context: NewContext("script", "ls\ncta x\n", Ranging{3, 6}),

		WantShow:        "script, line 2, column 1:\ncta x",
		WantShowCompact: "script, line 2, column 1: cta x",
	},
	{
		Name:    "columns count codepoints",
		Context: NewContext("[tty 1]", "cat /ü/x", Ranging{7, 8}),

		WantShow:        "[tty 1], line 1, column 7:\ncat /ü/x",
		WantShowCompact: "[tty 1], line 1, column 7: cat /ü/x",
	},
	{
		Name:    "empty culprit",
		Context: NewContext("[tty 1]", "cd x", Ranging{3, 3}),

		WantShow:        "[tty 1], line 1, column 4:\ncd ^x",
		WantShowCompact: "[tty 1], line 1, column 4: cd ^x",
	},
	{
		Name:            "unknown culprit range",
		Context:         NewContext("[tty 1]", "cd", Ranging{-1, -1}),
		WantShow:        "[tty 1], unknown position",
		WantShowCompact: "[tty 1], unknown position",
	},
	{
		Name:            "invalid culprit range",
		Context:         NewContext("[tty 1]", "cd", Ranging{2, 1}),
		WantShow:        "[tty 1], invalid position 2-1",
		WantShowCompact: "[tty 1], invalid position 2-1",
	},
}

func TestContext(t *testing.T) {
	testutil.Set(t, &color.NoColor, true)
	for _, test := range contextShowTests {
		t.Run(test.Name, func(t *testing.T) {
			show := test.Context.Show(test.Indent)
			if show != test.WantShow {
				t.Errorf("Show() -> %q, want %q", show, test.WantShow)
			}
			showCompact := test.Context.ShowCompact()
			if showCompact != test.WantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q", showCompact, test.WantShowCompact)
			}
		})
	}
}

func TestError(t *testing.T) {
	testutil.Set(t, &color.NoColor, true)
	err := NewError("command error", "[tty 2]", "lx /a", Ranging{0, 2},
		"unknown command: %s", "lx")

	wantError := "command error: 0-2 in [tty 2]: unknown command: lx"
	if s := err.Error(); s != wantError {
		t.Errorf("Error() -> %q, want %q", s, wantError)
	}
	wantShow := "command error: unknown command: lx\n  [tty 2], line 1, column 1: lx /a"
	if s := err.Show(""); s != wantShow {
		t.Errorf("Show() -> %q, want %q", s, wantShow)
	}
	if r := err.Range(); r != (Ranging{0, 2}) {
		t.Errorf("Range() -> %v, want %v", r, Ranging{0, 2})
	}
}
