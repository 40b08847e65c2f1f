package repository

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrKeyNotFound = errors.New("state key not found")

// StateStore menggantikan localStorage browser: key/value string per visitor
type StateStore interface {
	Load(ctx context.Context, visitorID, key string) (string, error)
	Save(ctx context.Context, visitorID, key, value string) error
	Clear(ctx context.Context, visitorID, key string) error
	// PurgeIdle menghapus state visitor yang tidak disentuh lebih lama dari idle
	PurgeIdle(ctx context.Context, idle time.Duration) (int64, error)
}

type visitorEntry struct {
	values    map[string]string
	touchedAt time.Time
}

type memoryStateStore struct {
	mu       sync.RWMutex
	visitors map[string]*visitorEntry
	now      func() time.Time
}

func NewMemoryStateStore() StateStore {
	return newMemoryStateStore(time.Now)
}

func newMemoryStateStore(now func() time.Time) *memoryStateStore {
	return &memoryStateStore{
		visitors: make(map[string]*visitorEntry),
		now:      now,
	}
}

func (s *memoryStateStore) Load(ctx context.Context, visitorID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.visitors[visitorID]
	if !ok {
		return "", ErrKeyNotFound
	}
	value, ok := entry.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *memoryStateStore) Save(ctx context.Context, visitorID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.visitors[visitorID]
	if !ok {
		entry = &visitorEntry{values: make(map[string]string)}
		s.visitors[visitorID] = entry
	}
	entry.values[key] = value
	entry.touchedAt = s.now()
	return nil
}

func (s *memoryStateStore) Clear(ctx context.Context, visitorID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.visitors[visitorID]
	if !ok {
		return nil
	}
	delete(entry.values, key)
	entry.touchedAt = s.now()
	if len(entry.values) == 0 {
		delete(s.visitors, visitorID)
	}
	return nil
}

func (s *memoryStateStore) PurgeIdle(ctx context.Context, idle time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := s.now().Add(-idle)
	var purged int64
	for id, entry := range s.visitors {
		if entry.touchedAt.Before(threshold) {
			purged += int64(len(entry.values))
			delete(s.visitors, id)
		}
	}
	return purged, nil
}
