package application

import (
	"time"

	"radiantwavetech.com/noisewave/internal/animation"
)

// frameScheduler is the repaint callback registry driven by the event loop.
// Callbacks requested while a run is in progress fire on the next run, so an
// animation that re-registers itself draws once per loop iteration.
type frameScheduler struct {
	next    animation.FrameHandle
	pending map[animation.FrameHandle]func(time.Time)
	order   []animation.FrameHandle
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{pending: make(map[animation.FrameHandle]func(time.Time))}
}

func (s *frameScheduler) RequestFrame(fn func(now time.Time)) animation.FrameHandle {
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *frameScheduler) CancelFrame(h animation.FrameHandle) {
	delete(s.pending, h)
}

// run fires every callback registered before the call and returns how many ran.
func (s *frameScheduler) run(now time.Time) int {
	order := s.order
	s.order = nil
	fired := 0
	for _, h := range order {
		fn, ok := s.pending[h]
		if !ok {
			continue
		}
		delete(s.pending, h)
		fn(now)
		fired++
	}
	return fired
}

func (s *frameScheduler) Len() int { return len(s.pending) }
