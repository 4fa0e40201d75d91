package cache

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	seq       int64
	fields    map[string][]byte
	flashes   []Flash
	expiresAt time.Time
}

// MemorySessionStore implements SessionStore in process memory. It is used
// when Redis is disabled and in tests; state is lost on restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &MemorySessionStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// session returns the live session for id, creating it when absent or
// expired. Callers hold s.mu.
func (s *MemorySessionStore) session(id string) *memorySession {
	now := s.now()
	sess, ok := s.sessions[id]
	if !ok || now.After(sess.expiresAt) {
		sess = &memorySession{fields: make(map[string][]byte)}
		s.sessions[id] = sess
	}
	sess.expiresAt = now.Add(s.ttl)
	return sess
}

func (s *MemorySessionStore) Begin(_ context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	sess.seq++
	return sess.seq, nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID, field string) ([]byte, bool, error) {
	if sessionID == "" {
		return nil, false, ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.session(sessionID).fields[field]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemorySessionStore) Set(_ context.Context, sessionID string, fields map[string][]byte) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(s.session(sessionID), fields)
	return nil
}

func (s *MemorySessionStore) SetIfCurrent(_ context.Context, sessionID string, seq int64, fields map[string][]byte) (bool, error) {
	if sessionID == "" {
		return false, ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.seq != seq {
		return false, nil
	}
	s.write(sess, fields)
	return true, nil
}

func (s *MemorySessionStore) write(sess *memorySession, fields map[string][]byte) {
	for k, v := range fields {
		sess.fields[k] = append([]byte(nil), v...)
	}
}

func (s *MemorySessionStore) PushFlash(_ context.Context, sessionID string, flash Flash) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	sess.flashes = append(sess.flashes, flash)
	if len(sess.flashes) > maxFlashes {
		sess.flashes = sess.flashes[len(sess.flashes)-maxFlashes:]
	}
	return nil
}

func (s *MemorySessionStore) PopFlashes(_ context.Context, sessionID string) ([]Flash, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	flashes := sess.flashes
	sess.flashes = nil
	if flashes == nil {
		flashes = []Flash{}
	}
	return flashes, nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemorySessionStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
