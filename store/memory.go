package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	fields    map[string]string
	expiresAt time.Time
}

// MemoryStore implements Store with in-process storage. Suited for tests and
// single-instance deployments; sessions do not survive a restart and are not
// shared across processes.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	ticker   *time.Ticker
	done     chan struct{}
}

// NewMemoryStore creates an in-memory store. Sessions expire ttl after their
// last write; ttl <= 0 disables both expiry and the cleanup loop.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	if ttl > 0 {
		s.ticker = time.NewTicker(ttl)
		go s.cleanupLoop()
	}

	return s
}

func (s *MemoryStore) Get(ctx context.Context, sessionKey, field string) (string, error) {
	if sessionKey == "" {
		return "", ErrEmptySessionKey
	}

	s.mu.RLock()
	entry, ok := s.sessions[sessionKey]
	if ok && (entry.expiresAt.IsZero() || time.Now().Before(entry.expiresAt)) {
		value, found := entry.fields[field]
		s.mu.RUnlock()
		if !found {
			return "", ErrNotFound
		}
		return value, nil
	}
	s.mu.RUnlock()

	if ok { // lazily drop the expired session
		s.mu.Lock()
		delete(s.sessions, sessionKey)
		s.mu.Unlock()
	}
	return "", ErrNotFound
}

func (s *MemoryStore) Set(ctx context.Context, sessionKey, field, value string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionKey]
	if !ok {
		entry = &memoryEntry{fields: make(map[string]string)}
		s.sessions[sessionKey] = entry
	}
	entry.fields[field] = value
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionKey string, fields ...string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionKey]
	if !ok {
		return nil
	}
	for _, field := range fields {
		delete(entry.fields, field)
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.deleteExpired()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) deleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.sessions {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.sessions, key)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
