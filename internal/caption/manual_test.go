package caption

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var epoch = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func TestManualSchedulerFiresInDeadlineOrder(t *testing.T) {
	s := NewManualScheduler(epoch)
	var fired []string

	s.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "c") })
	s.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	s.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "b") })

	s.Advance(200 * time.Millisecond)
	if diff := cmp.Diff([]string{"a", "b"}, fired); diff != "" {
		t.Fatalf("fired after 200ms (-want +got):\n%s", diff)
	}
	if got := s.Now(); !got.Equal(epoch.Add(200 * time.Millisecond)) {
		t.Errorf("Now() = %v, want %v", got, epoch.Add(200*time.Millisecond))
	}

	s.Advance(time.Second)
	if diff := cmp.Diff([]string{"a", "b", "c"}, fired); diff != "" {
		t.Errorf("fired after 1.2s (-want +got):\n%s", diff)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestManualSchedulerClockAtCallback(t *testing.T) {
	s := NewManualScheduler(epoch)
	var at time.Time
	s.AfterFunc(750*time.Millisecond, func() { at = s.Now() })

	s.Advance(5 * time.Second)
	if !at.Equal(epoch.Add(750 * time.Millisecond)) {
		t.Errorf("callback saw %v, want %v", at, epoch.Add(750*time.Millisecond))
	}
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler(epoch)
	called := false
	timer := s.AfterFunc(time.Second, func() { called = true })

	if !timer.Stop() {
		t.Error("first Stop() = false, want true")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	s.Advance(2 * time.Second)
	if called {
		t.Error("stopped timer fired")
	}
}

func TestManualSchedulerChainedTimers(t *testing.T) {
	s := NewManualScheduler(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		s.AfterFunc(time.Second, tick)
	}
	s.AfterFunc(time.Second, tick)

	s.Advance(3500 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestManualSchedulerNeverMovesBackwards(t *testing.T) {
	s := NewManualScheduler(epoch)
	s.AdvanceTo(epoch.Add(-time.Hour))
	if !s.Now().Equal(epoch) {
		t.Errorf("Now() = %v, want %v", s.Now(), epoch)
	}
}
