package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Context is a range of text in an input line or script. It is used for errors
// that can be attributed to a part of what the user typed, like an unknown
// command name.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

var (
	culpritStyle       = color.New(color.Bold, color.Underline)
	culpritPlaceHolder = "^"
)

// Show shows the Context as a position description followed by the relevant
// line, with the culprit highlighted.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.position() + "\n" + sourceIndent + c.relevantSource()
}

// ShowCompact is like Show, but puts the position description and the source
// excerpt on the same line.
func (c *Context) ShowCompact() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.position() + " " + c.relevantSource()
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

// Returns "line L, column C:" with both numbers 1-based. Columns count
// codepoints, not bytes.
func (c *Context) position() string {
	before := c.Source[:c.From]
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(lastLine(before)) + 1
	return fmt.Sprintf("line %d, column %d:", line, col)
}

// Returns the line containing the start of the culprit. A culprit spanning
// several lines is cut at the first line break.
func (c *Context) relevantSource() string {
	head := lastLine(c.Source[:c.From])
	culprit := firstLine(c.Source[c.From:c.To])
	var tail string
	if c.From+len(culprit) == c.To {
		tail = firstLine(c.Source[c.To:])
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	return head + culpritStyle.Sprint(culprit) + tail
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
