package store

import "sync"

// Subscriber is notified with the new state after every transition.
type Subscriber func(State)

// Store is the single shared state container. Reads return copies, so
// a caller can never tear or mutate the canonical state.
type Store struct {
	mu    sync.RWMutex
	state State

	subMu sync.Mutex
	subs  []Subscriber
}

// New creates a Store with an empty state.
func New() *Store {
	return &Store{state: NewState()}
}

// NewWith creates a Store seeded with a prepared state.
func NewWith(s State) *Store {
	return &Store{state: s}
}

// Dispatch applies one action and notifies subscribers with the
// resulting state. Subscribers run outside the state lock.
func (st *Store) Dispatch(a Action) {
	st.mu.Lock()
	st.state = Apply(st.state, a)
	snapshot := st.state.Clone()
	st.mu.Unlock()

	st.subMu.Lock()
	subs := append([]Subscriber(nil), st.subs...)
	st.subMu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// State returns a copy of the current state.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.Clone()
}

// Subscribe registers a callback fired after every transition.
func (st *Store) Subscribe(fn Subscriber) {
	st.subMu.Lock()
	defer st.subMu.Unlock()
	st.subs = append(st.subs, fn)
}
