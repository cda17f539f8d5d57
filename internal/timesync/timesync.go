// Package timesync pairs messages from two independent streams by time key.
// It backs the synchronized camera subscriber: frames arrive on one side,
// calibration records on the other, and the pair callback fires exactly once
// for every key seen on both sides.
package timesync

import "sync"

// DefaultDepth bounds the number of unmatched keys kept per synchronizer.
const DefaultDepth = 10

type entry[L, R any] struct {
	left     L
	right    R
	hasLeft  bool
	hasRight bool
}

// Synchronizer buffers recent messages from two sides and invokes the pair
// callback once a key has an entry from both. The buffer is bounded: once
// more than depth keys are pending, the oldest unmatched key is dropped
// silently, so a frame whose calibration never shows up does not pin memory
// forever.
//
// The callback runs while the synchronizer's lock is held, so it is never
// invoked concurrently with itself for the same instance. It must not call
// back into AddLeft/AddRight.
type Synchronizer[L, R any] struct {
	mu      sync.Mutex
	depth   int
	pending map[int64]*entry[L, R]
	order   []int64
	onPair  func(L, R)
}

// New creates a synchronizer with the given queue depth (<=0 means
// DefaultDepth) and pair callback.
func New[L, R any](depth int, onPair func(L, R)) *Synchronizer[L, R] {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Synchronizer[L, R]{
		depth:   depth,
		pending: make(map[int64]*entry[L, R], depth),
		onPair:  onPair,
	}
}

// AddLeft offers a left-side message under the given time key.
func (s *Synchronizer[L, R]) AddLeft(key int64, v L) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.get(key)
	e.left = v
	e.hasLeft = true
	s.matchLocked(key, e)
}

// AddRight offers a right-side message under the given time key.
func (s *Synchronizer[L, R]) AddRight(key int64, v R) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.get(key)
	e.right = v
	e.hasRight = true
	s.matchLocked(key, e)
}

// Pending returns the number of keys currently waiting for their other half.
func (s *Synchronizer[L, R]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Synchronizer[L, R]) get(key int64) *entry[L, R] {
	if e, ok := s.pending[key]; ok {
		return e
	}
	e := &entry[L, R]{}
	s.pending[key] = e
	s.order = append(s.order, key)
	if len(s.order) > s.depth {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.pending, oldest)
	}
	return e
}

func (s *Synchronizer[L, R]) matchLocked(key int64, e *entry[L, R]) {
	if !e.hasLeft || !e.hasRight {
		return
	}
	// Remove before invoking so the pair is delivered exactly once even if
	// the same key arrives again later.
	delete(s.pending, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.onPair != nil {
		s.onPair(e.left, e.right)
	}
}
