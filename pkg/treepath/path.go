// Package treepath implements slash-separated paths that address objects in a
// hierarchical store.
//
// Unlike the standard path package, a Path keeps the text it was created
// from: "a//b/" and "a/b" are different values. Methods that need a canonical
// form, such as Normalized and Resolve, return new values.
package treepath

import "strings"

// Separator separates the segments of a Path.
const Separator = '/'

const sep = "/"

// Path is a hierarchical path. A Path is absolute iff it starts with '/'.
type Path string

// Root returns the path of the root group.
func Root() Path { return sep }

// String returns the raw text of the path.
func (p Path) String() string { return string(p) }

// IsAbsolute reports whether p starts at the root.
func (p Path) IsAbsolute() bool {
	return strings.HasPrefix(string(p), sep)
}

// IsRoot reports whether p is exactly the root path.
func (p Path) IsRoot() bool { return p == sep }

// HasTrailingSeparator reports whether p ends with '/'.
func (p Path) HasTrailingSeparator() bool {
	return strings.HasSuffix(string(p), sep)
}

// Join returns other if it is absolute, and other appended to p with exactly
// one separator otherwise.
func (p Path) Join(other Path) Path {
	switch {
	case other.IsAbsolute() || p == "":
		return other
	case p.HasTrailingSeparator():
		return p + other
	default:
		return p + sep + other
	}
}

// Push appends a segment to p in place. Separators at the end of p and at the
// start of the segment are collapsed into one.
func (p *Path) Push(segment string) {
	segment = strings.TrimLeft(segment, sep)
	if *p == "" {
		*p = Path(segment)
		return
	}
	*p = Path(strings.TrimRight(string(*p), sep) + sep + segment)
}

// Name returns the last non-empty segment of p. The name of the root is the
// empty string.
func (p Path) Name() string {
	s := strings.TrimRight(string(p), sep)
	return s[strings.LastIndex(s, sep)+1:]
}

// Parent returns everything before the last separator of p. The parent of
// "/x" is the root, and the parent of the root is the root itself.
func (p Path) Parent() Path {
	parent, _ := p.SplitParent()
	return parent
}

// SplitParent splits p at its last separator into the parent path and the
// text after the separator, which is empty if p has a trailing separator.
// A relative path with no separator has an empty parent.
func (p Path) SplitParent() (Path, string) {
	if p.IsRoot() {
		return p, ""
	}
	s := string(p)
	i := strings.LastIndex(s, sep)
	switch i {
	case -1:
		return "", s
	case 0:
		return Root(), s[1:]
	default:
		return Path(s[:i]), s[i+1:]
	}
}

// Segments returns the non-empty segments of p in order.
func (p Path) Segments() []string {
	return strings.FieldsFunc(string(p), func(r rune) bool { return r == Separator })
}

// Normalized returns p with trailing separators removed. The root is kept as
// it is.
func (p Path) Normalized() Path {
	s := strings.TrimRight(string(p), sep)
	if s == "" && p.IsAbsolute() {
		return Root()
	}
	return Path(s)
}

// Resolve eliminates "." and ".." segments and empty segments from p. A ".."
// with nothing left to remove is dropped, so neither absolute nor relative
// paths can climb above their starting point. The result never has a trailing
// separator unless it is the root.
//
// Resolve is idempotent: p.Resolve().Resolve() == p.Resolve().
func (p Path) Resolve() Path {
	var stack []string
	for _, segment := range p.Segments() {
		switch segment {
		case ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, segment)
		}
	}
	joined := strings.Join(stack, sep)
	if p.IsAbsolute() {
		return Path(sep + joined)
	}
	return Path(joined)
}

// Rel returns p relative to base if base is an ancestor of p, and p itself
// otherwise. Both paths are expected to be resolved.
func (p Path) Rel(base Path) Path {
	if base.IsRoot() {
		return Path(strings.TrimPrefix(string(p), sep))
	}
	if rest, ok := strings.CutPrefix(string(p), string(base)+sep); ok {
		return Path(rest)
	}
	return p
}
