package client

import "sync"

// Store holds the session state behind a lock and fans state changes out
// to subscribers. There is no package-level instance; callers construct a
// store at their composition root and inject it.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewStore returns a store seeded with the initial state.
func NewStore() *Store {
	return &Store{state: NewState(), subs: make(map[int]func(State))}
}

// State returns a snapshot of the current state. Reduce never writes
// through shared slices, so the snapshot is safe to keep.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs the action through Reduce and notifies subscribers with
// the resulting state. Subscribers run outside the lock and may dispatch
// further actions.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
