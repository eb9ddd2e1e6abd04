package application

import (
	"testing"
	"time"

	"radiantwavetech.com/noisewave/internal/animation"
)

func TestFrameSchedulerRunsInOrder(t *testing.T) {
	s := newFrameScheduler()
	var got []int
	s.RequestFrame(func(time.Time) { got = append(got, 1) })
	s.RequestFrame(func(time.Time) { got = append(got, 2) })

	if n := s.run(time.Unix(0, 0)); n != 2 {
		t.Errorf("run fired %d callbacks, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("callbacks ran as %v", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after run", s.Len())
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := newFrameScheduler()
	ran := false
	h := s.RequestFrame(func(time.Time) { ran = true })
	s.CancelFrame(h)
	s.CancelFrame(h)
	if n := s.run(time.Now()); n != 0 || ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameSchedulerDefersReRegistration(t *testing.T) {
	s := newFrameScheduler()
	frames := 0
	var loop func(time.Time)
	loop = func(time.Time) {
		frames++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 3; i++ {
		if n := s.run(time.Now()); n != 1 {
			t.Fatalf("iteration %d fired %d callbacks, want 1", i, n)
		}
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}

func TestFrameSchedulerPassesTimestamp(t *testing.T) {
	s := newFrameScheduler()
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var got time.Time
	s.RequestFrame(func(now time.Time) { got = now })
	s.run(want)
	if !got.Equal(want) {
		t.Errorf("callback got %v, want %v", got, want)
	}
}

func TestFrameSchedulerDrivesAnimationHandles(t *testing.T) {
	var sched animation.Scheduler = newFrameScheduler()
	a := sched.RequestFrame(func(time.Time) {})
	b := sched.RequestFrame(func(time.Time) {})
	if a == 0 || a == b {
		t.Errorf("handles %d and %d should be distinct and non-zero", a, b)
	}
}
