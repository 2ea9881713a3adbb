package complete

import (
	"testing"

	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/parse"
	"src.treesh.dev/pkg/tt"
)

func classify(line string, pos int) Location {
	return Classify(parse.Parse(line), pos)
}

func loc(t LocationType, from, to int) Location {
	return Location{t, diag.Ranging{From: from, To: to}}
}

func TestClassify(t *testing.T) {
	tt.Test(t, tt.Fn("classify", classify), tt.Table{
		tt.Args("", 0).Rets(Location{}),
		tt.Args("   ", 1).Rets(Location{}),

		tt.Args("co", 0).Rets(loc(Command, 0, 2)),
		tt.Args("co", 1).Rets(loc(Command, 0, 2)),
		tt.Args("co", 2).Rets(loc(Command, 0, 2)),
		tt.Args("  co", 4).Rets(loc(Command, 2, 4)),

		//        0123456789
		tt.Args("cd /path", 8).Rets(loc(Path, 3, 8)),
		tt.Args("cd /path", 3).Rets(loc(Path, 3, 8)),
		tt.Args("ls -l", 5).Rets(loc(Other, 3, 5)),
		tt.Args("ls --name=x", 11).Rets(loc(Other, 3, 11)),
		tt.Args("ls -l /a", 8).Rets(loc(Path, 6, 8)),

		// In the whitespace between tokens.
		tt.Args("ls  /a", 3).Rets(Location{}),
		// Past the end of the call.
		tt.Args("ls /a ", 6).Rets(Location{}),
		tt.Args("ls ", 3).Rets(Location{}),
	})
}

func TestLocationType_String(t *testing.T) {
	tt.Test(t, tt.Fn("LocationType.String", LocationType.String), tt.Table{
		tt.Args(Other).Rets("other"),
		tt.Args(Command).Rets("command"),
		tt.Args(Path).Rets("path"),
	})
}
