package service

import (
	"maps"
	"sync"
)

// Session holds values shared between cases of one run, such as tokens and
// ids extracted from earlier responses.
type Session struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewSession() *Session {
	return &Session{values: make(map[string]any)}
}

func (s *Session) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

func (s *Session) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Snapshot returns a copy that later Set calls do not affect.
func (s *Session) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
