// Package mockdb implements the in-memory mock relational engine: a
// query-builder over seeded tables with row-level authorization, relation
// hydration and snapshot persistence through the storage adapter.
package mockdb

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/treinalab/treinalab/internal/storage"

	log "github.com/sirupsen/logrus"
)

// SnapshotKey is the storage key holding the JSON-encoded full table map.
const SnapshotKey = "supabase.mock.db"

// DefaultLatency is the simulated network delay applied before every
// query execution.
const DefaultLatency = 160 * time.Millisecond

// SessionSource exposes the profile of the currently signed-in identity to
// the row-level authorization policy.
type SessionSource interface {
	ActiveProfile(ctx context.Context) (Profile, bool)
}

type Options struct {
	// Latency is the simulated network delay per executed query.
	// Zero means DefaultLatency.
	Latency time.Duration

	// EnforceWriteAuthorization additionally gates mutation target rows
	// through the read policy. Off by default: the frontend is trusted to
	// be authorized before issuing writes.
	EnforceWriteAuthorization bool
}

// Store owns the in-memory table cache and its persisted snapshot. It is
// constructed once at process start and injected into every component that
// needs it; the table cache is loaded lazily on first query.
type Store struct {
	kv       storage.KeyValue
	sessions SessionSource
	opts     Options

	mutex  sync.Mutex
	tables *tableSet
}

func NewStore(kv storage.KeyValue, sessions SessionSource, opts Options) *Store {
	if opts.Latency == 0 {
		opts.Latency = DefaultLatency
	}
	return &Store{
		kv:       kv,
		sessions: sessions,
		opts:     opts,
	}
}

// loadLocked returns the table cache, building it on first use from the
// seed dataset overlaid with any persisted snapshot. Callers hold s.mutex.
func (s *Store) loadLocked(ctx context.Context) *tableSet {
	if s.tables != nil {
		return s.tables
	}

	tables := seedTables()

	value, found, err := s.kv.Get(ctx, SnapshotKey)
	if err != nil {
		log.Warnf("read persisted snapshot: %s", err)
	}
	if found && err == nil {
		var persisted map[string]json.RawMessage
		if err := json.Unmarshal([]byte(value), &persisted); err != nil {
			log.Warnf("persisted snapshot not decodable, re-seeding: %s", err)
		} else {
			tables.overlay(persisted)
		}
	}

	s.tables = tables
	s.persistLocked(ctx)
	return s.tables
}

// persistLocked serializes the complete table set back through the storage
// adapter. Failures are logged, not surfaced: the in-memory state stays
// authoritative for this process.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.tables)
	if err != nil {
		log.Errorf("marshal snapshot: %s", err)
		return
	}
	if err := s.kv.Set(ctx, SnapshotKey, string(data)); err != nil {
		log.Warnf("persist snapshot: %s", err)
	}
}

// Reset removes the persisted snapshot and immediately re-seeds the
// in-memory cache, so the running process observes the reset too.
func (s *Store) Reset(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.kv.Remove(ctx, SnapshotKey); err != nil {
		return err
	}
	s.tables = nil
	return nil
}

// From starts a query builder for the named table. Execution happens only
// on the explicit Exec call.
func (s *Store) From(table string) *Query {
	return &Query{
		store: s,
		table: table,
		limit: -1,
	}
}

// UserByEmail looks the user up in the live table state, bypassing latency
// and policy. Reserved for the authentication facade.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.loadLocked(ctx).userByEmail(email)
}

// ProfileByUserID looks the profile up in the live table state, bypassing
// latency and policy. Reserved for the authentication facade.
func (s *Store) ProfileByUserID(ctx context.Context, userID string) (Profile, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.loadLocked(ctx).profileByUserID(userID)
}
