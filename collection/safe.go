package collection

import "sync"

// Safe is an append-only container safe for any number of concurrent
// appenders with no external locking. Insertion order across
// goroutines is unspecified.
type Safe struct {
	mu sync.Mutex
	v  Vector
}

func (s *Safe) Append(x int) {
	s.mu.Lock()
	s.v.Append(x)
	s.mu.Unlock()
}

func (s *Safe) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Len()
}

func (s *Safe) Items() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Items()
}
