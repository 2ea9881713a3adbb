package boltfile

import (
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
)

// Tree describes the content of a store for Create. Each value is either a
// Tree, which becomes a group, or a string or []byte, which becomes a leaf.
type Tree map[string]any

// Create writes tree into the named file, creating it if needed. Groups that
// already exist are merged with tree.
func Create(name string, tree Tree) error {
	db, err := bolt.Open(name, 0600, &bolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, key := range sortedKeys(tree) {
			sub, ok := tree[key].(Tree)
			if !ok {
				return fmt.Errorf("%s: the root can only contain groups", key)
			}
			b, err := tx.CreateBucketIfNotExists([]byte(key))
			if err != nil {
				return err
			}
			if err := fill(b, "/"+key, sub); err != nil {
				return err
			}
		}
		return nil
	})
	if closeErr := db.Close(); err == nil {
		err = closeErr
	}
	return err
}

func fill(b *bolt.Bucket, path string, tree Tree) error {
	for _, key := range sortedKeys(tree) {
		var err error
		switch v := tree[key].(type) {
		case Tree:
			var sub *bolt.Bucket
			sub, err = b.CreateBucketIfNotExists([]byte(key))
			if err == nil {
				err = fill(sub, path+"/"+key, v)
			}
		case string:
			err = b.Put([]byte(key), []byte(v))
		case []byte:
			err = b.Put([]byte(key), v)
		default:
			err = fmt.Errorf("%s/%s: unsupported value type %T", path, key, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(tree Tree) []string {
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
