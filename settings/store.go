package settings

import (
	"sync"
	"sync/atomic"
)

// Store holds the current Settings. Reads are lock-free; writers are
// serialized and notify subscribers after the swap.
type Store struct {
	cur atomic.Pointer[Settings]

	mu   sync.Mutex
	subs map[int]func(Settings)
	next int
}

// NewStore returns a store holding s. s is not validated.
func NewStore(s Settings) *Store {
	st := &Store{subs: map[int]func(Settings){}}
	st.cur.Store(&s)
	return st
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings { return *s.cur.Load() }

// Set validates v and makes it current.
func (s *Store) Set(v Settings) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Store(&v)
	for _, fn := range s.subs {
		fn(v)
	}
	return nil
}

// Update applies fn to a copy of the current settings and stores the result
// if it validates.
func (s *Store) Update(fn func(*Settings)) error {
	v := s.Get()
	fn(&v)
	return s.Set(v)
}

// Subscribe calls fn with every new value. fn runs on the writer's goroutine.
func (s *Store) Subscribe(fn func(Settings)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
