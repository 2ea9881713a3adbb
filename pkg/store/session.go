package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	. "src.treesh.dev/pkg/store/storedefs"
)

type sessionRecord struct {
	File  string    `json:"file"`
	Start time.Time `json:"start"`
}

// Replaced in tests.
var now = time.Now

// AddSession records the start of a session browsing file and returns it.
func (s *dbStore) AddSession(file string) (Session, error) {
	session := Session{ID: uuid.NewString(), File: file, Start: now().UTC()}
	data, err := json.Marshal(sessionRecord{session.File, session.Start})
	if err != nil {
		return Session{}, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSession)).Put([]byte(session.ID), data)
	})
	if err != nil {
		return Session{}, err
	}
	logger.Debug("added session", "id", session.ID, "file", file)
	return session, nil
}

// Sessions returns all recorded sessions, oldest first.
func (s *dbStore) Sessions() ([]Session, error) {
	var sessions []Session
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSession)).ForEach(func(k, v []byte) error {
			var rec sessionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				logger.Warn("skipping corrupt session record", "id", string(k), "err", err)
				return nil
			}
			sessions = append(sessions, Session{ID: string(k), File: rec.File, Start: rec.Start})
			return nil
		})
	})
	sortSessions(sessions)
	return sessions, err
}

func sortSessions(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})
}
