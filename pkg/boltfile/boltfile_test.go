package boltfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.treesh.dev/pkg/edit/complete"
	"src.treesh.dev/pkg/must"
	"src.treesh.dev/pkg/testutil"
	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

type P = treepath.Path

var testTree = Tree{
	"base": Tree{
		"bb": Tree{
			"dd":  "dd value",
			"d1":  []byte{0, 1, 2},
			"d12": Tree{},
		},
		"stem": "leaf",
	},
	"other": Tree{},
}

func setup(t *testing.T) *File {
	t.Helper()
	name := filepath.Join(testutil.TempDir(t), "test.db")
	must.OK(Create(name, testTree))
	f := must.OK1(Open(name))
	t.Cleanup(func() { f.Close() })
	return f
}

func TestOpen_MissingFile(t *testing.T) {
	name := filepath.Join(testutil.TempDir(t), "missing.db")
	if _, err := Open(name); err == nil {
		t.Errorf("Open of a missing file succeeded")
	}
}

func TestLoad(t *testing.T) {
	f := setup(t)
	tests := []struct {
		path P
		want Object
	}{
		{"/", Object{Path: "/", Kind: Group}},
		{"/base", Object{Path: "/base", Kind: Group}},
		{"/base/", Object{Path: "/base", Kind: Group}},
		{"/base/bb/../stem", Object{Path: "/base/stem", Kind: Leaf, Size: 4}},
		{"/base/bb/d1", Object{Path: "/base/bb/d1", Kind: Leaf, Size: 3}},
	}
	for _, test := range tests {
		got, err := f.Load(test.path)
		if err != nil {
			t.Errorf("Load(%q) -> error %v", test.path, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Load(%q) (-want +got):\n%s", test.path, diff)
		}
	}
}

func TestLoad_NotFound(t *testing.T) {
	f := setup(t)
	for _, p := range []P{"/nope", "/base/nope", "/base/stem/x", "/base/bb/dd/x"} {
		_, err := f.Load(p)
		if !errors.Is(err, ErrNotFound) || !errors.Is(err, complete.ErrNotFound) {
			t.Errorf("Load(%q) -> %v, want a NotFoundError", p, err)
		}
	}
	if _, err := f.Load("base"); err == nil {
		t.Errorf("Load of a relative path succeeded")
	}
}

func TestChildren(t *testing.T) {
	f := setup(t)
	got := must.OK1(f.Children("/base/bb"))
	want := []Object{
		{Path: "/base/bb/d1", Kind: Leaf, Size: 3},
		{Path: "/base/bb/d12", Kind: Group},
		{Path: "/base/bb/dd", Kind: Leaf, Size: 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Children (-want +got):\n%s", diff)
	}

	root := must.OK1(f.Children("/"))
	if diff := cmp.Diff([]Object{{Path: "/base"}, {Path: "/other"}}, root); diff != "" {
		t.Errorf("Children(/) (-want +got):\n%s", diff)
	}

	empty := must.OK1(f.Children("/other"))
	if empty == nil || len(empty) != 0 {
		t.Errorf("Children(/other) -> %#v, want empty non-nil", empty)
	}

	if _, err := f.Children("/base/stem"); !errors.Is(err, ErrNotGroup) {
		t.Errorf("Children of a leaf -> %v, want ErrNotGroup", err)
	}
}

func TestValue(t *testing.T) {
	f := setup(t)
	if v := must.OK1(f.Value("/base/stem")); string(v) != "leaf" {
		t.Errorf("Value -> %q, want %q", v, "leaf")
	}
	if _, err := f.Value("/base"); !errors.Is(err, ErrIsGroup) {
		t.Errorf("Value of a group -> %v, want ErrIsGroup", err)
	}
}

func TestWalk(t *testing.T) {
	f := setup(t)
	var visited []P
	must.OK(f.Walk("/", func(obj Object) error {
		visited = append(visited, obj.Path)
		return nil
	}))
	want := []P{
		"/base", "/base/bb", "/base/bb/d1", "/base/bb/d12", "/base/bb/dd",
		"/base/stem", "/other",
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("Walk (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	n := 0
	err := f.Walk("/base", func(Object) error {
		n++
		return stop
	})
	if err != stop || n != 1 {
		t.Errorf("Walk with a failing callback -> (%v, %d calls)", err, n)
	}
}

func TestStat(t *testing.T) {
	f := setup(t)
	st := must.OK1(f.Stat("/base"))
	if st.Kind != Group || st.Keys == 0 || st.Groups != 2 {
		t.Errorf("Stat(/base) -> %+v", st)
	}
	root := must.OK1(f.Stat("/"))
	if root.Groups != 4 {
		t.Errorf("Stat(/).Groups = %d, want 4", root.Groups)
	}
	leaf := must.OK1(f.Stat("/base/stem"))
	if leaf.Kind != Leaf || leaf.Size != 4 {
		t.Errorf("Stat(/base/stem) -> %+v", leaf)
	}
}

func TestLoadChildren(t *testing.T) {
	f := setup(t)
	var loader complete.Loader[Object] = f
	items := must.OK1(loader.LoadChildren("/base"))
	want := []treecache.Item[Object]{
		{Path: "/base/bb", Value: Object{Path: "/base/bb"}, IsGroup: true},
		{Path: "/base/stem", Value: Object{Path: "/base/stem", Kind: Leaf, Size: 4}},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("LoadChildren (-want +got):\n%s", diff)
	}
	if _, err := loader.LoadChildren("/nope"); !errors.Is(err, complete.ErrNotFound) {
		t.Errorf("LoadChildren(/nope) -> %v, want ErrNotFound", err)
	}
}

func TestCompleteWithFile(t *testing.T) {
	f := setup(t)
	cache := treecache.New[Object]()
	cache.InsertGroup(treepath.Root(), Object{Path: "/"})
	got := complete.PathCompletions[Object](cache, "/base/bb/d", f)
	want := []P{"/base/bb/d1", "/base/bb/d12", "/base/bb/dd"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PathCompletions (-want +got):\n%s", diff)
	}
}

func TestCreate_LeafAtRoot(t *testing.T) {
	name := filepath.Join(testutil.TempDir(t), "bad.db")
	if err := Create(name, Tree{"x": "y"}); err == nil {
		t.Errorf("Create with a leaf at the root succeeded")
	}
	if err := Create(name, Tree{"g": Tree{"x": 42}}); err == nil {
		t.Errorf("Create with an int value succeeded")
	}
}

func TestKind_String(t *testing.T) {
	if Group.String() != "group" || Leaf.String() != "leaf" {
		t.Errorf("Kind.String() -> %q, %q", Group.String(), Leaf.String())
	}
}
