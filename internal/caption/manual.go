package caption

import (
	"sync"
	"time"
)

// ManualScheduler is a virtual clock. Time only moves through Advance and
// AdvanceTo, which run due callbacks synchronously in deadline order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	when time.Time
	seq  uint64
	fn   func()
	done bool
}

// NewManualScheduler creates a virtual clock starting at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, when: s.now.Add(d), seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.Now().Add(d))
}

// AdvanceTo moves the clock to target, firing every timer due at or before it.
// The clock never moves backwards.
func (s *ManualScheduler) AdvanceTo(target time.Time) {
	for {
		s.mu.Lock()
		t := s.nextDueLocked(target)
		if t == nil {
			if target.After(s.now) {
				s.now = target
			}
			s.mu.Unlock()
			return
		}
		s.removeLocked(t)
		t.done = true
		if t.when.After(s.now) {
			s.now = t.when
		}
		s.mu.Unlock()

		// Callbacks may schedule or stop timers.
		t.fn()
	}
}

// Pending returns the number of armed timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ManualScheduler) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range s.timers {
		if t.when.After(target) {
			continue
		}
		if next == nil || t.when.Before(next.when) || (t.when.Equal(next.when) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *ManualScheduler) removeLocked(t *manualTimer) {
	for i, cur := range s.timers {
		if cur == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.s.removeLocked(t)
	return true
}
