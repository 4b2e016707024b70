package caption

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran
	// or was already stopped.
	Stop() bool
}

// Scheduler is the clock and delayed-callback source used by the aggregator.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type wallScheduler struct{}

// NewWallScheduler returns a Scheduler backed by the system clock.
func NewWallScheduler() Scheduler {
	return wallScheduler{}
}

func (wallScheduler) Now() time.Time {
	return time.Now()
}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
