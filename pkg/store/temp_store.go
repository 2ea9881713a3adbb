package store

import (
	"path/filepath"

	"src.treesh.dev/pkg/must"
	"src.treesh.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The store is
// closed and the file removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st := must.OK1(NewStore(filepath.Join(dir, "db.bolt")))
	// Registered after TempDir, so it runs before the directory is removed.
	c.Cleanup(func() { st.Close() })
	return st
}
