// Package treecache implements an append-only cache of the objects of a
// hierarchical store that are known so far.
//
// Entries are addressed both by their normalized path and by an EntryID, a
// stable handle that is never reused. Entries are never removed. A group
// entry records whether its children have been fetched: a nil Children slice
// means the group is known to exist but has not been listed, while an empty
// non-nil slice means it has been listed and is empty.
package treecache

import (
	"errors"
	"fmt"

	"src.treesh.dev/pkg/treepath"
)

// ErrParentNotFound is returned by the InsertChildren methods when the parent
// is not in the cache.
var ErrParentNotFound = errors.New("parent not in cache")

// ErrNotGroup is returned by the InsertChildren methods when the parent is a
// leaf.
var ErrNotGroup = errors.New("parent is not a group")

// EntryID is a stable handle of an Entry in a Cache.
type EntryID int

// Kind tells groups from leaves.
type Kind uint8

// Possible values for Kind.
const (
	Group Kind = iota
	Leaf
)

func (k Kind) String() string {
	if k == Leaf {
		return "leaf"
	}
	return "group"
}

// Entry is a cached object.
type Entry[V any] struct {
	// Normalized path of the object.
	Path  treepath.Path
	Kind  Kind
	Value V
	// IDs of the children of a group, in the order they were inserted. Nil
	// until the children are inserted; always nil for a leaf.
	Children []EntryID
}

// IsGroup reports whether the entry is a group.
func (e Entry[V]) IsGroup() bool { return e.Kind == Group }

// IsLoaded reports whether the children of a group entry have been inserted.
func (e Entry[V]) IsLoaded() bool { return e.Children != nil }

// Item describes an object to insert with InsertChildren.
type Item[V any] struct {
	Path    treepath.Path
	Value   V
	IsGroup bool
}

// Cache is an insertion-ordered map from normalized paths to entries. The zero
// value is not usable; use New.
type Cache[V any] struct {
	ids     map[treepath.Path]EntryID
	entries []Entry[V]
}

// New returns an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{ids: make(map[treepath.Path]EntryID)}
}

// Len returns the number of entries.
func (c *Cache[V]) Len() int { return len(c.entries) }

// InsertGroup registers a group at the normalized form of p and returns its
// ID. The group starts with unknown children. If an entry already exists at
// that path, its ID is returned and the entry is not modified.
func (c *Cache[V]) InsertGroup(p treepath.Path, value V) EntryID {
	return c.insert(p, Group, value)
}

// InsertLeaf is like InsertGroup, but registers a leaf.
func (c *Cache[V]) InsertLeaf(p treepath.Path, value V) EntryID {
	return c.insert(p, Leaf, value)
}

func (c *Cache[V]) insert(p treepath.Path, kind Kind, value V) EntryID {
	p = p.Normalized()
	if id, ok := c.ids[p]; ok {
		return id
	}
	id := EntryID(len(c.entries))
	c.entries = append(c.entries, Entry[V]{Path: p, Kind: kind, Value: value})
	c.ids[p] = id
	return id
}

// ID returns the ID of the entry at the normalized form of p.
func (c *Cache[V]) ID(p treepath.Path) (EntryID, bool) {
	id, ok := c.ids[p.Normalized()]
	return id, ok
}

// Get looks up an entry by path. The path is normalized before the lookup.
func (c *Cache[V]) Get(p treepath.Path) (Entry[V], bool) {
	id, ok := c.ID(p)
	if !ok {
		return Entry[V]{}, false
	}
	return c.entries[id], true
}

// GetByID looks up an entry by ID.
func (c *Cache[V]) GetByID(id EntryID) (Entry[V], bool) {
	if id < 0 || int(id) >= len(c.entries) {
		return Entry[V]{}, false
	}
	return c.entries[id], true
}

// Children returns the child entries of the group with the given ID, in
// insertion order. It returns nil if the entry does not exist, is a leaf or
// has no children loaded.
func (c *Cache[V]) Children(id EntryID) []Entry[V] {
	e, ok := c.GetByID(id)
	if !ok || e.Children == nil {
		return nil
	}
	children := make([]Entry[V], len(e.Children))
	for i, childID := range e.Children {
		children[i] = c.entries[childID]
	}
	return children
}

// InsertChildren inserts items as new entries and appends their IDs to the
// children of the group with the given ID. After a successful call the
// group's children are known, even if items is empty.
func (c *Cache[V]) InsertChildren(parent EntryID, items []Item[V]) error {
	e, ok := c.GetByID(parent)
	if !ok {
		return fmt.Errorf("insert children of entry %d: %w", parent, ErrParentNotFound)
	}
	if !e.IsGroup() {
		return fmt.Errorf("insert children of %s: %w", e.Path, ErrNotGroup)
	}
	ids := make([]EntryID, len(items))
	for i, item := range items {
		if item.IsGroup {
			ids[i] = c.InsertGroup(item.Path, item.Value)
		} else {
			ids[i] = c.InsertLeaf(item.Path, item.Value)
		}
	}
	// The inserts above may have reallocated c.entries; e is a stale copy.
	children := c.entries[parent].Children
	if children == nil {
		children = make([]EntryID, 0, len(ids))
	}
	c.entries[parent].Children = append(children, ids...)
	return nil
}

// InsertChildrenAt is like InsertChildren, but looks up the parent by path.
func (c *Cache[V]) InsertChildrenAt(parent treepath.Path, items []Item[V]) error {
	id, ok := c.ID(parent)
	if !ok {
		return fmt.Errorf("insert children of %s: %w", parent, ErrParentNotFound)
	}
	return c.InsertChildren(id, items)
}
