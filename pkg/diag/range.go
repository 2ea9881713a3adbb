// Package diag contains building blocks for formatting and processing
// diagnostic information, such as the byte ranges of tokens in an input line
// and errors that point at them.
package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) of byte offsets within a string.
// Structs can embed Ranging to satisfy the [Ranger] interface.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// Contains reports whether p lies within r. The end boundary is inclusive, so
// a point immediately after the last byte is considered to be inside.
func (r Ranging) Contains(p int) bool {
	return r.From <= p && p <= r.To
}

// Len returns the number of bytes in the range.
func (r Ranging) Len() int { return r.To - r.From }

// Of returns the part of s covered by r.
func (r Ranging) Of(s string) string { return s[r.From:r.To] }

// PointRanging returns a zero-width Ranging at the given point.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// MixedRanging returns a Ranging from the start position of a to the end
// position of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
