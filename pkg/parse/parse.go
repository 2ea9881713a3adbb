// Package parse implements the command line parser for treesh.
//
// A command line is a function name followed by whitespace-separated
// arguments. Quoting and escaping are not supported. Parsing never fails:
// every string produces an Expression, with byte ranges pointing back into
// the input.
package parse

import (
	"strings"
	"unicode"

	"src.treesh.dev/pkg/diag"
)

// Expression is either Noop or *Call.
type Expression interface {
	diag.Ranger
	isExpression()
}

// Noop is the Expression for empty or whitespace-only input.
type Noop struct{}

func (Noop) isExpression() {}

// Range returns an empty range.
func (Noop) Range() diag.Ranging { return diag.PointRanging(0) }

// Call is a function name with arguments. Its Ranging extends from the start
// of the function name to the end of the last argument.
type Call struct {
	Function  Span
	Arguments []Argument
	diag.Ranging
}

func (*Call) isExpression() {}

// Args returns the text of all arguments.
func (c *Call) Args() []string {
	args := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		args[i] = arg.Text
	}
	return args
}

// Span is a run of text in the input, along with its byte range.
type Span struct {
	diag.Ranging
	Text string
}

func span(src string, from, to int) Span {
	return Span{diag.Ranging{From: from, To: to}, src[from:to]}
}

// ArgumentType classifies an Argument.
type ArgumentType int

// Possible values for ArgumentType.
const (
	// A positional argument.
	Plain ArgumentType = iota
	// An argument starting with a single '-'. The span includes the dash.
	Short
	// An argument starting with "--". The span includes the dashes and, if
	// present, the "=value" part.
	Long
)

var argumentTypeNames = [...]string{"Plain", "Short", "Long"}

func (t ArgumentType) String() string {
	if int(t) < len(argumentTypeNames) {
		return argumentTypeNames[t]
	}
	return "UnknownArgumentType"
}

// Argument is an argument of a Call.
type Argument struct {
	Type ArgumentType
	Span
}

// IsFlag reports whether the argument is a Short or Long flag.
func (a Argument) IsFlag() bool { return a.Type != Plain }

// Parse parses a command line.
func Parse(src string) Expression {
	sc := NewScanner(src)
	sc.EatWhile(unicode.IsSpace)
	if sc.IsFinished() {
		return Noop{}
	}

	call := &Call{Function: parseWord(sc, src)}
	var last diag.Ranger = call.Function
	for {
		sc.EatWhile(unicode.IsSpace)
		if sc.IsFinished() {
			break
		}
		arg := parseArgument(sc, src)
		call.Arguments = append(call.Arguments, arg)
		last = arg
	}
	call.Ranging = diag.MixedRanging(call.Function, last)
	return call
}

func parseArgument(sc *Scanner, src string) Argument {
	from := sc.Index()
	if sc.Current() != '-' {
		return Argument{Plain, parseWord(sc, src)}
	}

	sc.Eat()
	if atBoundary(sc) {
		return Argument{Short, span(src, from, sc.Index())}
	}
	if sc.Current() != '-' {
		return Argument{Short, span(src, from, sc.EatWhile(isWordRune))}
	}

	sc.Eat()
	if !atBoundary(sc) {
		sc.EatWhile(func(r rune) bool { return isWordRune(r) && r != '=' })
		if !sc.IsFinished() && sc.Current() == '=' {
			// The '=' and the value after it stay part of the same token.
			sc.Eat()
			sc.EatWhile(isWordRune)
		}
	}
	return Argument{Long, span(src, from, sc.Index())}
}

func parseWord(sc *Scanner, src string) Span {
	from := sc.Index()
	return span(src, from, sc.EatWhile(isWordRune))
}

func atBoundary(sc *Scanner) bool {
	return sc.IsFinished() || unicode.IsSpace(sc.Current())
}

func isWordRune(r rune) bool { return !unicode.IsSpace(r) }

// Line is a line in a script.
type Line struct {
	Offset int
	Text   string
}

// SplitLines splits a script into lines, returning each line along with the
// byte offset of its start. Line endings are not included.
func SplitLines(script string) []Line {
	var lines []Line
	offset := 0
	for {
		i := strings.IndexByte(script[offset:], '\n')
		if i == -1 {
			return append(lines, Line{offset, strings.TrimSuffix(script[offset:], "\r")})
		}
		lines = append(lines, Line{offset, strings.TrimSuffix(script[offset:offset+i], "\r")})
		offset += i + 1
	}
}
