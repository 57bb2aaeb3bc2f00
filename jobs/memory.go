package jobs

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	job       Job
	timestamp time.Time
}

// MemoryStore keeps jobs in a map. Entries older than the TTL are dropped when read
// or when Cleanup runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-process store. A zero ttl keeps jobs forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Put(_ context.Context, id string, job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{job: job, timestamp: m.now()}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Job, bool, error) {
	m.mu.RLock()
	entry, found := m.entries[id]
	m.mu.RUnlock()

	if !found {
		return Job{}, false, nil
	}
	if m.expired(entry) {
		m.mu.Lock()
		if current, ok := m.entries[id]; ok && m.expired(current) {
			delete(m.entries, id)
		}
		m.mu.Unlock()
		return Job{}, false, nil
	}
	return entry.job, true, nil
}

// Cleanup removes expired entries and returns how many were dropped
func (m *MemoryStore) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, including expired ones not yet cleaned up
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryStore) expired(entry memoryEntry) bool {
	return m.ttl > 0 && m.now().Sub(entry.timestamp) > m.ttl
}
