package diag

import (
	"fmt"

	"github.com/fatih/color"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
}

// NewError creates an Error of the given type, attributed to the part of src
// covered by r.
func NewError(typ, name, src string, r Ranger, format string, args ...any) *Error {
	return &Error{typ, fmt.Sprintf(format, args...), *NewContext(name, src, r)}
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %d-%d in %s: %s",
		e.Type, e.Context.From, e.Context.To, e.Context.Name, e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

var messageStyle = color.New(color.FgRed, color.Bold)

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s\n", e.Type, messageStyle.Sprint(e.Message))
	return header + indent + "  " + e.Context.ShowCompact()
}
