// Package memory is the default session store: a mutex-guarded map used
// when no database is configured. Snapshots are deep-copied both ways so
// the engine and the store never share mutable state.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courtkeeper/courtside/internal/model"
	"github.com/courtkeeper/courtside/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.GameSession
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*model.GameSession)}
}

var _ repository.SessionRepository = (*Store)(nil)
var _ repository.Pinger = (*Store)(nil)

func (s *Store) Save(_ context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Code] = session.Clone()
	return nil
}

func (s *Store) Load(_ context.Context, code string) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return session.Clone(), nil
}

func (s *Store) List(_ context.Context) ([]repository.SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]repository.SessionSummary, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, repository.SessionSummary{
			Code:      session.Code,
			Name:      session.Name,
			Status:    session.State.Status,
			UpdatedAt: session.UpdatedAt,
		})
	}
	// Newest activity first, stable for equal timestamps.
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].Code < out[j].Code
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) Exists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[code]
	return ok, nil
}

func (s *Store) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[code]; !ok {
		return repository.ErrNotFound
	}
	delete(s.sessions, code)
	return nil
}

// Ping always succeeds; the map is process-local.
func (s *Store) Ping(_ context.Context) error { return nil }
