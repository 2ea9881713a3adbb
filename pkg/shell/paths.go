package shell

import (
	"os"
	"path/filepath"

	"src.treesh.dev/pkg/env"
)

// DataDir returns the directory for data written by treesh, creating it if
// needed. It is $XDG_DATA_HOME/treesh, falling back to the platform default
// when XDG_DATA_HOME is unset.
func DataDir() (string, error) {
	base := os.Getenv(env.XDG_DATA_HOME)
	if base == "" {
		var err error
		base, err = defaultDataHome()
		if err != nil {
			return "", err
		}
	}
	dir := filepath.Join(base, "treesh")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the path of the history database.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}
