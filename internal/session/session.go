// Package session owns the client's identity state: one credential, one
// identity, one explicit status machine. Pages and commands read the Store;
// only the Service writes it.
package session

import (
	"sync"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
)

type Status string

const (
	// StatusRestoring is the startup state, before Restore has decided
	// whether the persisted credential is still good. Identity-gated UI
	// must not render either branch while restoring.
	StatusRestoring Status = "restoring"

	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Store is the single source of truth for the current identity. It starts
// in StatusRestoring and holds the invariant that an identity is present
// exactly when the status is authenticated.
type Store struct {
	mu       sync.Mutex
	status   Status
	identity *model.Identity
}

func NewStore() *Store {
	return &Store{status: StatusRestoring}
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Identity returns a copy of the current identity, or nil when the session
// is not authenticated.
func (s *Store) Identity() *model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Store) Authenticated() bool {
	return s.Status() == StatusAuthenticated
}

func (s *Store) setAuthenticated(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAuthenticated
	s.identity = &id
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAnonymous
	s.identity = nil
}
