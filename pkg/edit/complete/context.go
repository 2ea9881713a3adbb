package complete

import (
	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/parse"
)

// LocationType classifies what the cursor is on.
type LocationType int

// Possible values for LocationType.
const (
	// Nothing that can be completed.
	Other LocationType = iota
	// The function name of a call.
	Command
	// A plain argument, which is taken to be a path.
	Path
)

var locationTypeNames = [...]string{"other", "command", "path"}

func (t LocationType) String() string { return locationTypeNames[t] }

// Location is the result of Classify: the type of the token under the cursor
// and its range.
type Location struct {
	Type LocationType
	diag.Ranging
}

// Classify determines what kind of token pos is on in expr. A token contains
// pos if pos is anywhere from its first byte up to and including the offset
// right after it.
func Classify(expr parse.Expression, pos int) Location {
	call, ok := expr.(*parse.Call)
	// Nothing inside a call is looked at once pos is outside of it.
	if !ok || !call.Contains(pos) {
		return Location{}
	}
	if call.Function.Contains(pos) {
		return Location{Command, call.Function.Ranging}
	}
	for _, arg := range call.Arguments {
		if !arg.Contains(pos) {
			continue
		}
		if arg.IsFlag() {
			return Location{Other, arg.Ranging}
		}
		return Location{Path, arg.Ranging}
	}
	return Location{}
}
