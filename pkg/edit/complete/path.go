package complete

import (
	"errors"
	"strings"

	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

// ErrNotFound is returned by a Loader when the path does not exist.
var ErrNotFound = errors.New("not found")

// Loader enumerates the immediate children of a group in the backing store.
type Loader[V any] interface {
	LoadChildren(p treepath.Path) ([]treecache.Item[V], error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[V any] func(p treepath.Path) ([]treecache.Item[V], error)

// LoadChildren calls f(p).
func (f LoaderFunc[V]) LoadChildren(p treepath.Path) ([]treecache.Item[V], error) {
	return f(p)
}

// PathCompletions returns the paths that complete target, which must be an
// absolute path with "." and ".." resolved. A trailing separator on target
// asks for the children of the group it names.
//
// Groups on the way to target are listed through loader and added to cache
// when their children are not yet known, and never listed twice. Errors from
// loader are not returned: a path that cannot be loaded has no completions.
func PathCompletions[V any](cache *treecache.Cache[V], target treepath.Path, loader Loader[V]) []treepath.Path {
	if !target.IsAbsolute() {
		return nil
	}
	if e, ok := cache.Get(target); ok {
		switch {
		case !e.IsGroup():
			return []treepath.Path{target}
		case !target.HasTrailingSeparator():
			return []treepath.Path{target + "/"}
		}
	}

	parentID, ok := ensureLoaded(cache, target.Parent(), loader)
	if !ok {
		return nil
	}
	var paths []treepath.Path
	for _, child := range cache.Children(parentID) {
		if strings.HasPrefix(string(child.Path), string(target)) {
			paths = append(paths, child.Path)
		}
	}
	return paths
}

// Makes sure that the children of the group at p are in cache, loading every
// group from the deepest ancestor already in cache down to p itself. It
// returns the ID of p and whether it is a group whose children are now
// known.
func ensureLoaded[V any](cache *treecache.Cache[V], p treepath.Path, loader Loader[V]) (treecache.EntryID, bool) {
	id, ok := cache.ID(treepath.Root())
	if !ok {
		logger.Warn("root is not in the cache")
		return 0, false
	}
	segments := p.Segments()

	// Skip ancestors already in the cache.
	cur, i := treepath.Root(), 0
	for ; i < len(segments); i++ {
		next := cur.Join(treepath.Path(segments[i]))
		nextID, ok := cache.ID(next)
		if !ok {
			break
		}
		cur, id = next, nextID
	}

	for {
		e, _ := cache.GetByID(id)
		if !e.IsGroup() {
			return 0, false
		}
		if !e.IsLoaded() {
			items, err := loader.LoadChildren(cur)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					logger.Info("cannot load children", "path", cur, "err", err)
				}
				return 0, false
			}
			if err := cache.InsertChildren(id, items); err != nil {
				logger.Error("cannot insert children", "path", cur, "err", err)
				return 0, false
			}
		}
		if i == len(segments) {
			return id, true
		}
		cur = cur.Join(treepath.Path(segments[i]))
		i++
		if id, ok = cache.ID(cur); !ok {
			return 0, false
		}
	}
}
