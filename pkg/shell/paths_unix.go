//go:build !windows

package shell

import (
	"os"
	"path/filepath"
)

func defaultDataHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
