// Package session holds the currently authenticated identity as a persisted
// record, produced by sign-in and consumed by the row-level policy engine.
package session

import (
	"context"
	"encoding/json"

	"github.com/treinalab/treinalab/internal/mockdb"
	"github.com/treinalab/treinalab/internal/storage"

	log "github.com/sirupsen/logrus"
)

// StorageKey is the storage key holding the JSON-encoded session.
const StorageKey = "supabase.session"

// Session pairs an authenticated user with its role profile.
type Session struct {
	AccessToken string         `json:"access_token"`
	User        mockdb.User    `json:"user"`
	Profile     mockdb.Profile `json:"profile"`
}

type Store struct {
	kv storage.KeyValue
}

func NewStore(kv storage.KeyValue) *Store {
	return &Store{kv: kv}
}

func (s *Store) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, StorageKey, string(data))
}

// Current returns the persisted session, or nil when absent. A malformed
// persisted value is treated as absent, never as an error.
func (s *Store) Current(ctx context.Context) *Session {
	value, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		log.Warnf("read session: %s", err)
		return nil
	}
	if !found {
		return nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		log.Warnf("persisted session not decodable, ignoring: %s", err)
		return nil
	}
	return &sess
}

// Clear deletes the persisted session. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, StorageKey)
}

// ActiveProfile implements mockdb.SessionSource.
func (s *Store) ActiveProfile(ctx context.Context) (mockdb.Profile, bool) {
	sess := s.Current(ctx)
	if sess == nil {
		return mockdb.Profile{}, false
	}
	return sess.Profile, true
}
