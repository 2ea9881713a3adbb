package complete

import (
	"testing"

	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/treepath"
	"src.treesh.dev/pkg/tt"
)

var commands = []string{"cat", "cd", "command", "exit", "ls"}

func complete(line string, dot int, wd P) (*Result, error) {
	return Complete(CodeBuffer{line, dot}, Config[int]{
		Commands:    commands,
		Cache:       newCache(),
		WorkingPath: wd,
		Loader:      &strictLoader{},
	})
}

func TestComplete(t *testing.T) {
	root := treepath.Root()
	tt.Test(t, tt.Fn("complete", complete), tt.Table{
		tt.Args("", 0, root).Rets((*Result)(nil), ErrNoCompletion),

		tt.Args("co", 2, root).Rets(&Result{
			Type: Command, Replace: diag.Ranging{From: 0, To: 2}, Insertion: 2,
			Items: []Candidate{{Display: "command", Replacement: "mmand"}},
		}, nil),
		tt.Args("c", 1, root).Rets(&Result{
			Type: Command, Replace: diag.Ranging{From: 0, To: 1}, Insertion: 1,
			Items: []Candidate{
				{Display: "cat", Replacement: "at"},
				{Display: "cd", Replacement: "d"},
				{Display: "command", Replacement: "ommand"},
			},
		}, nil),
		// Completion only happens at the end of a token.
		tt.Args("comm", 2, root).Rets((*Result)(nil), ErrNoCompletion),
		tt.Args("xyz", 3, root).Rets(&Result{
			Type: Command, Replace: diag.Ranging{From: 0, To: 3}, Insertion: 3,
		}, nil),

		tt.Args("ls /base/bb/d", 13, root).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 3, To: 13}, Insertion: 13,
			Items: []Candidate{
				{Display: "/base/bb/d1", Replacement: "1"},
				{Display: "/base/bb/d12", Replacement: "12"},
				{Display: "/base/bb/dd", Replacement: "d"},
			},
		}, nil),
		// Relative to the working path.
		tt.Args("cat bb/d", 8, P("/base")).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 4, To: 8}, Insertion: 8,
			Items: []Candidate{
				{Display: "/base/bb/d1", Replacement: "1"},
				{Display: "/base/bb/d12", Replacement: "12"},
				{Display: "/base/bb/dd", Replacement: "d"},
			},
		}, nil),
		tt.Args("cd ba", 5, root).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 3, To: 5}, Insertion: 5,
			Items: []Candidate{{Display: "/base", Replacement: "se"}},
		}, nil),
		// With a fresh cache, /base is only found by listing the root.
		tt.Args("cd /base", 8, root).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 3, To: 8}, Insertion: 8,
			Items: []Candidate{{Display: "/base", Replacement: ""}},
		}, nil),
		tt.Args("cd ../", 6, P("/base")).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 3, To: 6}, Insertion: 6,
			Items: []Candidate{
				{Display: "/base", Replacement: "base"},
				{Display: "/other", Replacement: "other"},
			},
		}, nil),
		tt.Args("cd ..", 5, P("/base")).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 3, To: 5}, Insertion: 5,
			Items: []Candidate{{Display: "/", Replacement: "/"}},
		}, nil),
		tt.Args("cd /nope/", 9, root).Rets(&Result{
			Type: Path, Replace: diag.Ranging{From: 3, To: 9}, Insertion: 9,
		}, nil),
		// Flags are not completed.
		tt.Args("ls -l", 5, root).Rets((*Result)(nil), ErrNoCompletion),
		tt.Args("ls ", 3, root).Rets((*Result)(nil), ErrNoCompletion),
	})
}

func TestComplete_CachedGroupGetsSeparator(t *testing.T) {
	cfg := Config[int]{Cache: newCache(), WorkingPath: treepath.Root(), Loader: &strictLoader{}}
	Complete(CodeBuffer{"cd /", 4}, cfg)

	r, err := Complete(CodeBuffer{"cd /base", 8}, cfg)
	want := []Candidate{{Display: "/base/", Replacement: "/"}}
	if err != nil || len(r.Items) != 1 || r.Items[0] != want[0] {
		t.Errorf("Complete -> (%v, %v), want items %v", r, err, want)
	}
}

func TestComplete_WithoutCacheHasNoPaths(t *testing.T) {
	r, err := Complete(CodeBuffer{"ls /", 4}, Config[int]{Commands: commands})
	if err != nil || len(r.Items) != 0 {
		t.Errorf("Complete without a cache -> (%v, %v), want no items", r, err)
	}
}

func TestResolveTarget(t *testing.T) {
	tt.Test(t, tt.Fn("ResolveTarget", ResolveTarget), tt.Table{
		tt.Args(P("/base"), "bb").Rets(P("/base/bb")),
		tt.Args(P("/base"), "bb/").Rets(P("/base/bb/")),
		tt.Args(P("/base"), "/x/../y/").Rets(P("/y/")),
		tt.Args(P("/base"), "../").Rets(P("/")),
		tt.Args(P("/base"), ".").Rets(P("/base")),
		tt.Args(P("/base"), "./").Rets(P("/base/")),
	})
}
