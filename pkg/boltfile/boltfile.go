// Package boltfile exposes a bbolt database file as a tree of groups and
// leaves.
//
// Nested buckets are groups and keys with values are leaves. The root group is
// the set of top-level buckets, so the root never contains leaves. Keys that
// are empty or contain '/' cannot be addressed by a path and are skipped.
package boltfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.treesh.dev/pkg/edit/complete"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

var logger = logutil.GetLogger("boltfile")

// ErrNotFound is wrapped by *NotFoundError.
var ErrNotFound = errors.New("no such object")

// ErrIsGroup is returned when a leaf is needed but a group was found.
var ErrIsGroup = errors.New("is a group")

// ErrNotGroup is returned when a group is needed but a leaf was found.
var ErrNotGroup = errors.New("not a group")

// NotFoundError is returned when a path does not name an object. It matches
// both ErrNotFound and complete.ErrNotFound with errors.Is.
type NotFoundError struct {
	Path treepath.Path
}

func (e *NotFoundError) Error() string { return e.Path.String() + ": " + ErrNotFound.Error() }

// Is reports whether target is one of the not-found sentinels.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == complete.ErrNotFound
}

// Kind tells groups from leaves.
type Kind int

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

// Object describes a group or a leaf.
type Object struct {
	Path treepath.Path
	Kind Kind
	// Length of the value of a leaf; 0 for groups.
	Size int
}

// IsGroup reports whether the object is a group.
func (o Object) IsGroup() bool { return o.Kind == Group }

// File is an open store file.
type File struct {
	name string
	db   *bolt.DB
}

// OpenTimeout is how long Open waits for another process to release the file.
var OpenTimeout = time.Second

// Open opens an existing store file for reading.
func Open(name string) (*File, error) {
	// bbolt creates missing files even in read-only mode.
	if _, err := os.Stat(name); err != nil {
		return nil, err
	}
	db, err := bolt.Open(name, 0600, &bolt.Options{Timeout: OpenTimeout, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	logger.Debug("opened store", "file", name)
	return &File{name, db}, nil
}

// Name returns the file name passed to Open.
func (f *File) Name() string { return f.name }

// Close closes the file.
func (f *File) Close() error { return f.db.Close() }

// Either a *bolt.Tx (the root) or a *bolt.Bucket.
type container interface {
	Bucket(name []byte) *bolt.Bucket
	Cursor() *bolt.Cursor
}

// A resolved path: either a group with its container, or a leaf with its
// value.
type node struct {
	group container
	value []byte
}

func find(tx *bolt.Tx, p treepath.Path) (node, error) {
	if !p.IsAbsolute() {
		return node{}, fmt.Errorf("%s: path is not absolute", p)
	}
	segments := p.Resolve().Segments()
	var cur container = tx
	for i, seg := range segments {
		key := []byte(seg)
		if b := cur.Bucket(key); b != nil {
			cur = b
			continue
		}
		if b, ok := cur.(*bolt.Bucket); ok && i == len(segments)-1 {
			if v := b.Get(key); v != nil {
				return node{value: v}, nil
			}
		}
		return node{}, &NotFoundError{p}
	}
	return node{group: cur}, nil
}

func objectOf(p treepath.Path, n node) Object {
	if n.group != nil {
		return Object{Path: p, Kind: Group}
	}
	return Object{Path: p, Kind: Leaf, Size: len(n.value)}
}

// Load returns the object at p, which must be absolute.
func (f *File) Load(p treepath.Path) (Object, error) {
	p = p.Resolve()
	var obj Object
	err := f.db.View(func(tx *bolt.Tx) error {
		n, err := find(tx, p)
		if err != nil {
			return err
		}
		obj = objectOf(p, n)
		return nil
	})
	return obj, err
}

// Children returns the immediate children of the group at p, ordered by key.
func (f *File) Children(p treepath.Path) ([]Object, error) {
	p = p.Resolve()
	var children []Object
	err := f.db.View(func(tx *bolt.Tx) error {
		n, err := find(tx, p)
		if err != nil {
			return err
		}
		if n.group == nil {
			return fmt.Errorf("%s: %w", p, ErrNotGroup)
		}
		children = listChildren(p, n.group)
		return nil
	})
	return children, err
}

func listChildren(p treepath.Path, group container) []Object {
	children := []Object{}
	c := group.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		name := string(k)
		if name == "" || strings.ContainsRune(name, treepath.Separator) {
			logger.Debug("skipping unaddressable key", "group", p, "key", name)
			continue
		}
		child := p.Join(treepath.Path(name))
		if v == nil {
			children = append(children, Object{Path: child, Kind: Group})
		} else {
			children = append(children, Object{Path: child, Kind: Leaf, Size: len(v)})
		}
	}
	return children
}

// Value returns a copy of the value of the leaf at p.
func (f *File) Value(p treepath.Path) ([]byte, error) {
	p = p.Resolve()
	var value []byte
	err := f.db.View(func(tx *bolt.Tx) error {
		n, err := find(tx, p)
		if err != nil {
			return err
		}
		if n.group != nil {
			return fmt.Errorf("%s: %w", p, ErrIsGroup)
		}
		value = append([]byte{}, n.value...)
		return nil
	})
	return value, err
}

// WalkFunc is called by Walk for each object. Returning a non-nil error stops
// the walk, and the error is returned by Walk.
type WalkFunc func(obj Object) error

// Walk calls fn for every descendant of the group at p, depth first, with
// the children of each group visited in key order right after the group
// itself.
func (f *File) Walk(p treepath.Path, fn WalkFunc) error {
	p = p.Resolve()
	return f.db.View(func(tx *bolt.Tx) error {
		n, err := find(tx, p)
		if err != nil {
			return err
		}
		if n.group == nil {
			return fmt.Errorf("%s: %w", p, ErrNotGroup)
		}
		return walk(p, n.group, fn)
	})
}

func walk(p treepath.Path, group container, fn WalkFunc) error {
	for _, child := range listChildren(p, group) {
		if err := fn(child); err != nil {
			return err
		}
		if child.IsGroup() {
			err := walk(child.Path, group.Bucket([]byte(child.Path.Name())), fn)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadChildren implements complete.Loader.
func (f *File) LoadChildren(p treepath.Path) ([]treecache.Item[Object], error) {
	children, err := f.Children(p)
	if err != nil {
		return nil, err
	}
	items := make([]treecache.Item[Object], len(children))
	for i, child := range children {
		items[i] = treecache.Item[Object]{Path: child.Path, Value: child, IsGroup: child.IsGroup()}
	}
	return items, nil
}
