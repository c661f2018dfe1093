// internal/store/session_store.go
package store

import (
	"context"
	"sync"
)

// SessionEvent is delivered to subscribers whenever the persisted login
// token is created or destroyed, including changes made by other instances
// sharing the same substrate.
type SessionEvent struct {
	LoggedIn bool
}

// SessionStore persists the single opaque login token. Presence of the
// token is the entire login state: set on login, deleted on logout, never
// expired. Subscribe implements the watch contract so that every view of
// the application can re-derive its logged-in flag without polling.
type SessionStore interface {
	Put(ctx context.Context, token string) error
	Token(ctx context.Context) (string, bool, error)
	Delete(ctx context.Context) error
	Subscribe() (<-chan SessionEvent, func())
	Close() error
}

// MemorySessionStore keeps the token in process memory. Used by tests and
// database-less development runs; events only reach subscribers in the same
// process.
type MemorySessionStore struct {
	mtx    sync.Mutex
	token  string
	exists bool
	subs   map[int]chan SessionEvent
	nextID int
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		subs: make(map[int]chan SessionEvent),
	}
}

func (s *MemorySessionStore) Put(ctx context.Context, token string) error {
	s.mtx.Lock()
	s.token = token
	s.exists = true
	s.mtx.Unlock()

	s.broadcast(SessionEvent{LoggedIn: true})
	return nil
}

func (s *MemorySessionStore) Token(ctx context.Context) (string, bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.token, s.exists, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context) error {
	s.mtx.Lock()
	s.token = ""
	s.exists = false
	s.mtx.Unlock()

	s.broadcast(SessionEvent{LoggedIn: false})
	return nil
}

func (s *MemorySessionStore) Subscribe() (<-chan SessionEvent, func()) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan SessionEvent, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *MemorySessionStore) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	return nil
}

func (s *MemorySessionStore) broadcast(ev SessionEvent) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than block a mutation.
		}
	}
}
