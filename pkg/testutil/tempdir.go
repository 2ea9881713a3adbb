package testutil

import (
	"os"
	"path/filepath"

	"src.treesh.dev/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
//
// It panics if the test directory cannot be created or symlinks cannot be
// resolved. It is only suitable for use in tests.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "treeshtest"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			panic(err)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original directory when the test finishes. It returns the
// directory.
func InTempDir(c Cleanuper) string {
	tmpHome := TempDir(c)
	Chdir(c, tmpHome)
	return tmpHome
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes. It returns the directory for easier chaining.
func Chdir(c Cleanuper, dir string) string {
	oldWd := must.OK1(os.Getwd())
	must.Chdir(dir)
	c.Cleanup(func() { must.Chdir(oldWd) })
	return dir
}

// TempFile returns the path of a not yet existing file inside a fresh
// temporary directory.
func TempFile(c Cleanuper, name string) string {
	return filepath.Join(TempDir(c), name)
}
