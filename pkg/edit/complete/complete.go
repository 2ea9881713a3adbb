// Package complete implements code completion for the treesh command line.
//
// The token under the cursor is either a command name, completed from a set of
// known names, or a plain argument, completed as a path in the backing store
// using a session-wide cache.
package complete

import (
	"errors"
	"sort"
	"strings"

	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/parse"
	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

var logger = logutil.GetLogger("complete")

// ErrNoCompletion is returned by Complete if there is no applicable
// completion.
var ErrNoCompletion = errors.New("no completion")

// CodeBuffer is the content of the input line and the byte offset of the
// cursor in it.
type CodeBuffer struct {
	Content string
	Dot     int
}

// Config stores the configuration required for completion.
type Config[V any] struct {
	// Names of known commands.
	Commands []string
	// Cache of known paths. It is populated by Complete as needed.
	Cache *treecache.Cache[V]
	// Path that relative paths are resolved against.
	WorkingPath treepath.Path
	// Lists groups whose children are not in Cache yet.
	Loader Loader[V]
}

// Candidate is a completion candidate.
type Candidate struct {
	// Full text of the candidate, for showing.
	Display string
	// Text to insert at the cursor.
	Replacement string
}

// Creates a Candidate from text if it starts with prefix.
func candidateFromPrefix(text, prefix string) (Candidate, bool) {
	if !strings.HasPrefix(text, prefix) {
		return Candidate{}, false
	}
	return Candidate{Display: text, Replacement: text[len(prefix):]}, true
}

// Result keeps the result of the completion algorithm.
type Result struct {
	// Type of the completed token.
	Type LocationType
	// Range of the completed token.
	Replace diag.Ranging
	// Offset at which Replacement of each item goes, which is always the
	// cursor.
	Insertion int
	Items     []Candidate
}

// Complete runs the completion algorithm for the cursor position in code. It
// returns ErrNoCompletion unless the cursor is at the end of a command name
// or a plain argument.
func Complete[V any](code CodeBuffer, cfg Config[V]) (*Result, error) {
	loc := Classify(parse.Parse(code.Content), code.Dot)
	if loc.Type == Other || code.Dot != loc.To {
		return nil, ErrNoCompletion
	}
	typed := loc.Of(code.Content)

	var items []Candidate
	switch loc.Type {
	case Command:
		items = completeCommand(typed, cfg.Commands)
	case Path:
		items = completePath(typed, cfg)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Display < items[j].Display })
	return &Result{Type: loc.Type, Replace: loc.Ranging, Insertion: code.Dot, Items: items}, nil
}

func completeCommand(typed string, commands []string) []Candidate {
	var items []Candidate
	for _, name := range commands {
		if c, ok := candidateFromPrefix(name, typed); ok {
			items = append(items, c)
		}
	}
	return items
}

func completePath[V any](typed string, cfg Config[V]) []Candidate {
	if cfg.Cache == nil || cfg.Loader == nil {
		return nil
	}
	target := ResolveTarget(cfg.WorkingPath, typed)
	if target.IsRoot() && !strings.HasSuffix(typed, "/") {
		// Something like "..", naming the root without ending in '/'.
		return []Candidate{{Display: "/", Replacement: "/"}}
	}
	var items []Candidate
	for _, p := range PathCompletions(cfg.Cache, target, cfg.Loader) {
		if c, ok := candidateFromPrefix(string(p), string(target)); ok {
			items = append(items, c)
		}
	}
	return items
}

// ResolveTarget resolves typed against wd. Unlike treepath.Path.Resolve, it
// keeps a trailing separator, which asks for the children of a group rather
// than the group itself.
func ResolveTarget(wd treepath.Path, typed string) treepath.Path {
	target := wd.Join(treepath.Path(typed)).Resolve()
	if strings.HasSuffix(typed, "/") && !target.IsRoot() {
		target += "/"
	}
	return target
}
