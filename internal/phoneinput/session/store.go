// Package session persists phone input controller snapshots between requests.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"flagphone_backend/internal/phoneinput/domain"
)

var (
	// ErrNotFound is returned for unknown or expired session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrConflict is returned when Update keeps losing to concurrent writers.
	ErrConflict = errors.New("session modified concurrently")
)

// UpdateFunc derives the next snapshot from the stored one. It may run more
// than once for a single Update and must not have side effects beyond its
// return value.
type UpdateFunc func(domain.Snapshot) (domain.Snapshot, error)

// Store keeps snapshots by session ID. Put and Update refresh the expiry.
type Store interface {
	Get(ctx context.Context, id string) (domain.Snapshot, error)
	Put(ctx context.Context, id string, snap domain.Snapshot) error
	// Update replaces an existing snapshot with fn's result atomically with
	// respect to other Update and Put calls on the same ID.
	Update(ctx context.Context, id string, fn UpdateFunc) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	snap      domain.Snapshot
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return domain.Snapshot{}, ErrNotFound
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, id)
		return domain.Snapshot{}, ErrNotFound
	}
	return cloneSnapshot(entry.snap), nil
}

func (m *MemoryStore) Put(ctx context.Context, id string, snap domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{snap: cloneSnapshot(snap), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok || !m.now().Before(entry.expiresAt) {
		delete(m.entries, id)
		return ErrNotFound
	}

	next, err := fn(cloneSnapshot(entry.snap))
	if err != nil {
		return err
	}
	m.entries[id] = memoryEntry{snap: cloneSnapshot(next), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

func cloneSnapshot(s domain.Snapshot) domain.Snapshot {
	if s.Selection.Codes != nil {
		s.Selection.Codes = append([]string(nil), s.Selection.Codes...)
	}
	return s
}

var _ Store = (*MemoryStore)(nil)
