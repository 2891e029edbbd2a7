// Package reservation tracks unique-constrained values (ISBNs, usernames)
// currently claimed by live records. Check-then-reserve is a single atomic
// operation so two concurrent creations can never both claim the same key.
package reservation

import "sync"

type Set struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewSet() *Set {
	return &Set{keys: map[string]struct{}{}}
}

// Reserve atomically claims key. It returns false if the key is already held.
func (s *Set) Reserve(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.keys[key]; held {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Release frees key. Releasing an unheld key is a no-op.
func (s *Set) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.keys, key)
}

// Reserved reports whether key is currently held.
func (s *Set) Reserved(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, held := s.keys[key]
	return held
}

// Len returns the number of held keys.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.keys)
}
