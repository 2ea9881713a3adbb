package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	. "src.treesh.dev/pkg/store/storedefs"
)

func init() {
	initDB["initialize command history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

// Command lines are keyed by their sequence number, encoded big-endian so
// that the key order of the bucket is the order of the history.
func seqKey(seq int) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(seq))
}

func seqOf(key []byte) int {
	return int(binary.BigEndian.Uint64(key))
}

func cmdBucket(tx *bolt.Tx) *bolt.Bucket {
	return tx.Bucket([]byte(bucketCmd))
}

func cmdAt(k, v []byte) Cmd {
	return Cmd{Text: string(v), Seq: seqOf(k)}
}

// NextCmdSeq returns the sequence number the next recorded command line will
// get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var next int
	err := s.db.View(func(tx *bolt.Tx) error {
		next = int(cmdBucket(tx).Sequence()) + 1
		return nil
	})
	return next, err
}

// AddCmd records a command line and returns its sequence number.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := cmdBucket(tx)
		n, err := b.NextSequence()
		if err != nil {
			return err
		}
		seq = int(n)
		return b.Put(seqKey(seq), []byte(text))
	})
	return seq, err
}

// DelCmd removes the command line with the given sequence number. Removing a
// missing entry is not an error.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return cmdBucket(tx).Delete(seqKey(seq))
	})
}

// Cmd returns the command line with the given sequence number, or
// ErrNoMatchingCmd.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := cmdBucket(tx).Get(seqKey(seq))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns the command lines with sequence numbers in [from, upto),
// oldest first.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		for k, v := c.Seek(seqKey(max(from, 0))); k != nil && seqOf(k) < upto; k, v = c.Next() {
			cmds = append(cmds, cmdAt(k, v))
		}
		return nil
	})
	return cmds, err
}

// PrevCmd returns the newest command line that starts with prefix and has a
// sequence number below upto, or ErrNoMatchingCmd.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		// Seek lands on the first key at or after upto; the one before it is
		// the first candidate. Past the end, start from the last key.
		k, v := c.Seek(seqKey(max(upto, 0)))
		if k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = cmdAt(k, v)
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}
