package boltfile

import (
	bolt "go.etcd.io/bbolt"

	"src.treesh.dev/pkg/treepath"
)

// Stat describes an object in more detail than Object.
type Stat struct {
	Object
	// For groups, the number of key/value pairs in the whole subtree.
	Keys int
	// For groups, the number of groups in the subtree, excluding the group
	// itself.
	Groups int
	// For groups, the depth of the underlying B+tree.
	Depth int
}

// Stat returns statistics of the object at p.
func (f *File) Stat(p treepath.Path) (Stat, error) {
	p = p.Resolve()
	var st Stat
	err := f.db.View(func(tx *bolt.Tx) error {
		n, err := find(tx, p)
		if err != nil {
			return err
		}
		st.Object = objectOf(p, n)
		switch g := n.group.(type) {
		case *bolt.Bucket:
			bs := g.Stats()
			st.Keys, st.Groups, st.Depth = bs.KeyN, bs.BucketN-1, bs.Depth
		case *bolt.Tx:
			return g.ForEach(func(_ []byte, b *bolt.Bucket) error {
				bs := b.Stats()
				st.Keys += bs.KeyN
				st.Groups += bs.BucketN
				st.Depth = max(st.Depth, bs.Depth)
				return nil
			})
		}
		return nil
	})
	return st, err
}
