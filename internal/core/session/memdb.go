package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"
)

const sessionTable = "session"

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			sessionTable: {
				Name: sessionTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:   "id",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "TenantID"},
								&memdb.StringFieldIndex{Field: "CustomerID"},
							},
						},
					},
					"tenant": {
						Name:    "tenant",
						Indexer: &memdb.StringFieldIndex{Field: "TenantID"},
					},
				},
			},
		},
	}
}

// MemoryStore keeps sessions in an indexed in-memory table. Stored objects
// are never handed out: reads return clones and writes insert clones.
type MemoryStore struct {
	db  *memdb.MemDB
	now func() time.Time
}

func NewMemoryStore() (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("session: create memdb: %w", err)
	}
	return &MemoryStore{db: db, now: time.Now}, nil
}

// WithClock replaces the time source, for tests.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Get(_ context.Context, key Key) (*Session, error) {
	if !key.Valid() {
		return nil, ErrInvalidKey
	}

	txn := m.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(sessionTable, "id", key.TenantID, key.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("session: lookup %s: %w", key, err)
	}

	var s *Session
	if raw == nil {
		s = New(key, m.now())
	} else {
		s = raw.(*Session).Clone()
		s.LastActivity = m.now()
	}

	if err := txn.Insert(sessionTable, s.Clone()); err != nil {
		return nil, fmt.Errorf("session: store %s: %w", key, err)
	}
	txn.Commit()
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	txn := m.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(sessionTable, s.Clone()); err != nil {
		return fmt.Errorf("session: save %s: %w", s.Key(), err)
	}
	txn.Commit()
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, key Key) error {
	if !key.Valid() {
		return ErrInvalidKey
	}

	txn := m.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(sessionTable, "id", key.TenantID, key.CustomerID)
	if err != nil {
		return fmt.Errorf("session: lookup %s: %w", key, err)
	}

	s := New(key, m.now())
	if raw != nil {
		prev := raw.(*Session)
		s.Language = prev.Language
		s.LanguageSticky = prev.LanguageSticky
	}
	if err := txn.Insert(sessionTable, s); err != nil {
		return fmt.Errorf("session: reset %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (m *MemoryStore) Sweep(_ context.Context, maxAge time.Duration) ([]Key, error) {
	cutoff := m.now().Add(-maxAge)
	return m.deleteWhere("id", nil, func(s *Session) bool {
		return s.LastActivity.Before(cutoff)
	})
}

func (m *MemoryStore) ReapTenant(_ context.Context, tenantID string) ([]Key, error) {
	return m.deleteWhere("tenant", []interface{}{tenantID}, func(*Session) bool { return true })
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	txn := m.db.Txn(false)
	it, err := txn.Get(sessionTable, "id")
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

func (m *MemoryStore) deleteWhere(index string, args []interface{}, match func(*Session) bool) ([]Key, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(sessionTable, index, args...)
	if err != nil {
		return nil, fmt.Errorf("session: scan: %w", err)
	}

	var doomed []*Session
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if s := obj.(*Session); match(s) {
			doomed = append(doomed, s)
		}
	}

	keys := make([]Key, 0, len(doomed))
	for _, s := range doomed {
		if err := txn.Delete(sessionTable, s); err != nil {
			return nil, fmt.Errorf("session: delete %s: %w", s.Key(), err)
		}
		keys = append(keys, s.Key())
	}
	txn.Commit()
	return keys, nil
}
