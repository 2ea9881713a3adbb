package edit

import (
	"strings"

	"src.treesh.dev/pkg/store/storedefs"
)

// Returns the last limit commands in store, oldest first.
func loadHistory(store storedefs.Store, limit int) []string {
	if store == nil || limit <= 0 {
		return nil
	}
	next, err := store.NextCmdSeq()
	if err != nil {
		logger.Warn("cannot read history", "err", err)
		return nil
	}
	cmds, err := store.CmdsWithSeq(max(next-limit, 0), next)
	if err != nil {
		logger.Warn("cannot read history", "err", err)
		return nil
	}
	lines := make([]string, len(cmds))
	for i, cmd := range cmds {
		lines[i] = cmd.Text
	}
	return lines
}

// Records accepted lines in a store.
type recorder struct {
	store storedefs.Store
	last  string
}

// Records line unless it is blank, starts with a space or repeats the last
// recorded line. It reports whether the line belongs in the history, even if
// there is no store or the store failed.
func (r *recorder) record(line string) bool {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, " ") || line == r.last {
		return false
	}
	r.last = line
	if r.store != nil {
		if _, err := r.store.AddCmd(line); err != nil {
			logger.Warn("cannot record command", "err", err)
		}
	}
	return true
}
