// Package store is the persistent storage of the shell: command history,
// visited groups and sessions, kept in a bbolt database.
//
// This database is unrelated to the store files the shell browses.
package store

import (
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.treesh.dev/pkg/logutil"
	. "src.treesh.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("store")

// Buckets.
const (
	bucketCmd     = "cmd"
	bucketGroup   = "group"
	bucketSession = "session"
)

// DBStore is the permanent storage backend for the shell. It is not thread-safe.
// In particular, the store may be closed while another goroutine is still
// accessing the store.
type DBStore interface {
	Store
	Close() error
}

var initDB = map[string]func(*bolt.Tx) error{}

func init() {
	initDB["initialize groups and sessions tables"] = func(tx *bolt.Tx) error {
		for _, name := range []string{bucketGroup, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Info("initializing store")
	defer logger.Info("initialized store")
	st := &dbStore{db}

	// Run the initializers in a stable order.
	names := make([]string, 0, len(initDB))
	for name := range initDB {
		names = append(names, name)
	}
	sort.Strings(names)
	err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range names {
			if err := initDB[name](tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close releases the database file.
func (s *dbStore) Close() error {
	return s.db.Close()
}
