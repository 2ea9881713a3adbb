package store

import (
	"sort"
	"strconv"

	bolt "go.etcd.io/bbolt"

	. "src.treesh.dev/pkg/store/storedefs"
)

// Parameters for group history scores.
const (
	GroupScoreDecay     = 0.986 // roughly 0.5^(1/50)
	GroupScoreIncrement = 10
	GroupScorePrecision = 6
)

func marshalScore(score float64) []byte {
	return []byte(strconv.FormatFloat(score, 'E', GroupScorePrecision, 64))
}

func unmarshalScore(data []byte) float64 {
	f, _ := strconv.ParseFloat(string(data), 64)
	return f
}

// AddGroup records a visit to a group of a store file. The scores of all other
// groups of the same file decay.
func (s *dbStore) AddGroup(file, group string, incFactor float64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(bucketGroup)).CreateBucketIfNotExists([]byte(file))
		if err != nil {
			return err
		}

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			score := unmarshalScore(v) * GroupScoreDecay
			if err := b.Put(k, marshalScore(score)); err != nil {
				return err
			}
		}

		k := []byte(group)
		score := float64(0)
		if v := b.Get(k); v != nil {
			score = unmarshalScore(v)
		}
		score += GroupScoreIncrement * incFactor
		return b.Put(k, marshalScore(score))
	})
}

// DelGroup deletes a group record from history.
func (s *dbStore) DelGroup(file, group string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketGroup)).Bucket([]byte(file))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(group))
	})
}

// Groups lists the visited groups of a store file, ordered by scores in
// descending order.
func (s *dbStore) Groups(file string) ([]Group, error) {
	var groups []Group
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketGroup)).Bucket([]byte(file))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			groups = append(groups, Group{Path: string(k), Score: unmarshalScore(v)})
			return nil
		})
	})
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Score > groups[j].Score })
	return groups, err
}
