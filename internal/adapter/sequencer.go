package adapter

import (
	"sync"
	"sync/atomic"
)

// Sequencer hands out the sequence markers stored as created_at and updated_at.
// Values returned by one Sequencer never decrease.
//
//go:generate mockgen -source=sequencer.go -destination=../mocks/sequencer.go -package=mocks -mock_names=Sequencer=MockSequencer
type Sequencer interface {
	// Next returns the marker for the operation being applied
	Next() uint64
}

// clockSequencer derives markers from unix seconds, the way a block timestamp would
type clockSequencer struct {
	mu    sync.Mutex
	clock Clock
	last  uint64
}

// NewClockSequencer creates a sequencer backed by the given clock.
// A clock that steps backwards repeats the last marker instead of going back.
func NewClockSequencer(clock Clock) Sequencer {
	return &clockSequencer{clock: clock}
}

func (s *clockSequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().Unix()
	if now > 0 && uint64(now) > s.last {
		s.last = uint64(now)
	}
	return s.last
}

// counterSequencer is a strictly increasing counter
type counterSequencer struct {
	n atomic.Uint64
}

// NewCounterSequencer creates a counter that starts after the given seed.
// Seed it with the highest marker already persisted to stay monotonic across restarts.
func NewCounterSequencer(seed uint64) Sequencer {
	s := &counterSequencer{}
	s.n.Store(seed)
	return s
}

func (s *counterSequencer) Next() uint64 {
	return s.n.Add(1)
}
