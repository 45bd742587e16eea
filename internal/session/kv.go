// Package session keeps server-side session state behind an opaque signed cookie.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by KV.Get when the id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// KV is the byte store sessions are persisted in.
type KV interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Set(ctx context.Context, id string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryKV is a process-local KV with time-based eviction.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time

	stop    chan struct{}
	stopped sync.Once
}

// NewMemoryKV starts a MemoryKV whose janitor sweeps expired entries every interval.
// A non-positive interval disables the janitor; expired entries are still never returned.
func NewMemoryKV(interval time.Duration) *MemoryKV {
	kv := &MemoryKV{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if interval > 0 {
		go kv.janitor(interval)
	}
	return kv
}

func (m *MemoryKV) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *MemoryKV) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func (m *MemoryKV) Get(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, id)
		return nil, ErrNotFound
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (m *MemoryKV) Set(_ context.Context, id string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{value: stored, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryKV) Ping(context.Context) error { return nil }

// Len returns the number of stored entries, expired or not.
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the janitor.
func (m *MemoryKV) Close() error {
	m.stopped.Do(func() { close(m.stop) })
	return nil
}
