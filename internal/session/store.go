// Package session keeps per-user dialogue state between telegram updates.
//
// The store is purely in-memory: conversation position and scratch data live
// only for the process lifetime. The cached authorization flag also never
// expires - a user deleted on the server side keeps the stale flag until
// restart.
package session

import (
	"sync"

	"timetracker/internal/domain"
)

type entry struct {
	state domain.UserState
	data  map[string]string

	authKnown bool
	admin     bool
}

// Store is an in-memory session directory keyed by telegram id.
// Safe for concurrent use from multiple handler goroutines.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*entry)}
}

func (s *Store) get(userID int64) *entry {
	e, ok := s.sessions[userID]
	if !ok {
		e = &entry{state: domain.StateIdle, data: make(map[string]string)}
		s.sessions[userID] = e
	}
	return e
}

// State returns the user's current dialogue state, StateIdle if none.
func (s *Store) State(userID int64) domain.UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.sessions[userID]; ok {
		return e.state
	}
	return domain.StateIdle
}

// SetState moves the user to the given dialogue state.
func (s *Store) SetState(userID int64, state domain.UserState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).state = state
}

// SetData stores a scratch value accumulated during a flow.
func (s *Store) SetData(userID int64, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).data[key] = value
}

// Data returns a scratch value stored earlier in the current flow.
func (s *Store) Data(userID int64, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[userID]
	if !ok {
		return "", false
	}
	v, ok := e.data[key]
	return v, ok
}

// ClearData drops all scratch values, keeping state and the auth cache.
func (s *Store) ClearData(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[userID]; ok {
		e.data = make(map[string]string)
	}
}

// Reset ends the current flow: state back to idle, scratch data dropped.
// The authorization cache survives.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[userID]; ok {
		e.state = domain.StateIdle
		e.data = make(map[string]string)
	}
}

// SetAuthorized caches the authorization answer from the API. A later call
// overwrites the previous value, it is never merged.
func (s *Store) SetAuthorized(userID int64, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.get(userID)
	e.authKnown = true
	e.admin = admin
}

// Authorized reports the cached admin flag and whether it was ever set.
func (s *Store) Authorized(userID int64) (admin, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[userID]
	if !ok {
		return false, false
	}
	return e.admin, e.authKnown
}
