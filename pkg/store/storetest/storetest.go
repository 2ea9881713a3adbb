// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	. "src.treesh.dev/pkg/store/storedefs"
)

var cmds = []string{"ls /base", "cd bb", "cd ..", "ls -l"}

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, store Store) {
	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() => (%v, %v), want (1, nil)",
			startSeq, err)
	}

	// AddCmd
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) => (%v, %v), want (%v, nil)",
				cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() => (%v, %v), want (%v, nil)",
			endSeq, err, wantedEndSeq)
	}

	// CmdsWithSeq
	wantCmdWithSeqs := make([]Cmd, len(cmds))
	for i, cmd := range cmds {
		wantCmdWithSeqs[i] = Cmd{Text: cmd, Seq: i + 1}
	}
	for i := 0; i < len(cmds); i++ {
		for j := i; j <= len(cmds); j++ {
			cmdWithSeqs, err := store.CmdsWithSeq(i+1, j+1)
			if !equalCmds(cmdWithSeqs, wantCmdWithSeqs[i:j]) || err != nil {
				t.Errorf("store.CmdsWithSeq(%v, %v) -> (%v, %v), want (%v, nil)",
					i+1, j+1, cmdWithSeqs, err, wantCmdWithSeqs[i:j])
			}
		}
	}

	// Cmd
	for i, wantedCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantedCmd || err != nil {
			t.Errorf("store.Cmd(%v) => (%v, %v), want (%v, nil)",
				seq, cmd, err, wantedCmd)
		}
	}

	// PrevCmd
	for _, test := range []struct {
		upto      int
		prefix    string
		wantedSeq int
		wantedCmd string
		wantedErr error
	}{
		{5, "ls", 4, "ls -l", nil},
		{5, "cd", 3, "cd ..", nil},
		{4, "ls", 1, "ls /base", nil},
		{100, "", 4, "ls -l", nil},
		{3, "f", 0, "", ErrNoMatchingCmd},
		{1, "", 0, "", ErrNoMatchingCmd},
	} {
		cmd, err := store.PrevCmd(test.upto, test.prefix)
		wantedCmd := Cmd{Text: test.wantedCmd, Seq: test.wantedSeq}
		if cmd != wantedCmd || err != test.wantedErr {
			t.Errorf("store.PrevCmd(%v, %q) => (%v, %v), want (%v, %v)",
				test.upto, test.prefix, cmd, err, wantedCmd, test.wantedErr)
		}
	}

	// DelCmd
	if err := store.DelCmd(3); err != nil {
		t.Errorf("store.DelCmd(3) => %v", err)
	}
	if cmd, err := store.Cmd(3); err != ErrNoMatchingCmd {
		t.Errorf("store.Cmd(3) after DelCmd => (%q, %v), want (\"\", %v)",
			cmd, err, ErrNoMatchingCmd)
	}
	// Searches skip over the deleted entry.
	if cmd, err := store.PrevCmd(4, "cd"); cmd.Seq != 2 || err != nil {
		t.Errorf("store.PrevCmd(4, \"cd\") after DelCmd => (%v, %v), want seq 2", cmd, err)
	}
	if seq, _ := store.NextCmdSeq(); seq != wantedEndSeq {
		t.Errorf("store.NextCmdSeq() after DelCmd => %v, want %v", seq, wantedEndSeq)
	}
}

func equalCmds(a, b []Cmd) bool {
	return (len(a) == 0 && len(b) == 0) || cmp.Equal(a, b)
}

// TestGroup tests the group history functionality of a Store.
func TestGroup(t *testing.T, store Store) {
	const file = "/tmp/a.bolt"
	if groups, err := store.Groups(file); len(groups) != 0 || err != nil {
		t.Errorf("Groups of an unknown file => (%v, %v), want (empty, nil)", groups, err)
	}

	for _, g := range []string{"/base", "/base/bb", "/base"} {
		if err := store.AddGroup(file, g, 1); err != nil {
			t.Errorf("AddGroup(%q) => %v", g, err)
		}
	}
	if err := store.AddGroup("/tmp/other.bolt", "/x", 1); err != nil {
		t.Errorf("AddGroup in another file => %v", err)
	}

	groups, err := store.Groups(file)
	if err != nil {
		t.Fatalf("Groups => error %v", err)
	}
	var paths []string
	for _, g := range groups {
		paths = append(paths, g.Path)
	}
	if diff := cmp.Diff([]string{"/base", "/base/bb"}, paths); diff != "" {
		t.Errorf("Groups paths (-want +got):\n%s", diff)
	}

	if err := store.DelGroup(file, "/base"); err != nil {
		t.Errorf("DelGroup => %v", err)
	}
	groups, _ = store.Groups(file)
	if len(groups) != 1 || groups[0].Path != "/base/bb" {
		t.Errorf("Groups after DelGroup => %v", groups)
	}
	if err := store.DelGroup("/tmp/none.bolt", "/x"); err != nil {
		t.Errorf("DelGroup in an unknown file => %v", err)
	}
}

// TestSession tests the session functionality of a Store.
func TestSession(t *testing.T, store Store) {
	a, err := store.AddSession("/tmp/a.bolt")
	if err != nil {
		t.Fatalf("AddSession => error %v", err)
	}
	b, err := store.AddSession("/tmp/b.bolt")
	if err != nil {
		t.Fatalf("AddSession => error %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session IDs %q and %q are not distinct", a.ID, b.ID)
	}

	sessions, err := store.Sessions()
	if err != nil {
		t.Fatalf("Sessions => error %v", err)
	}
	files := map[string]string{}
	for _, s := range sessions {
		files[s.ID] = s.File
	}
	want := map[string]string{a.ID: a.File, b.ID: b.File}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Sessions (-want +got):\n%s", diff)
	}
}
