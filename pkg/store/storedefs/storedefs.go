// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoMatchingCmd is returned by Cmd and PrevCmd when no command line
// matches.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	DelCmd(seq int) error
	Cmd(seq int) (string, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	PrevCmd(upto int, prefix string) (Cmd, error)

	AddGroup(file, group string, incFactor float64) error
	DelGroup(file, group string) error
	Groups(file string) ([]Group, error)

	AddSession(file string) (Session, error)
	Sessions() ([]Session, error)
}

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

// Group is an entry in the history of visited groups of a store file.
type Group struct {
	Path  string
	Score float64
}

// Session records one run of the shell.
type Session struct {
	ID    string
	File  string
	Start time.Time
}
