package state

import "sync/atomic"

// sequence hands out object IDs. It is never rewound, so IDs stay unique
// across Clear.
type sequence struct {
	counter int64
}

// next returns the next ID, starting at 0.
func (s *sequence) next() ID {
	return ID(atomic.AddInt64(&s.counter, 1) - 1)
}
