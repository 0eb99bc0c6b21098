package state

import "sync"

// Store owns a State and applies actions to it one batch at a time.
// It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
	seq       uint64

	// delivery order
	dmu       sync.Mutex
	turn      *sync.Cond
	delivered uint64
}

func NewStore(initial State) *Store {
	s := &Store{state: initial, listeners: make(map[int]func(State))}
	s.turn = sync.NewCond(&s.dmu)
	return s
}

// Dispatch applies actions in order as one atomic step and returns the
// resulting state. Listeners run afterwards, outside the state lock, and
// see the state as of the end of this batch. Batches reach listeners in the
// order they were applied, one batch at a time. A listener must not call
// Dispatch.
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	snapshot := s.state
	seq := s.seq
	s.seq++
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	s.dmu.Lock()
	for s.delivered != seq {
		s.turn.Wait()
	}
	s.dmu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}

	s.dmu.Lock()
	s.delivered++
	s.turn.Broadcast()
	s.dmu.Unlock()
	return snapshot
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every Dispatch. The returned
// function unregisters it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
