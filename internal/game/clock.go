package game

import "time"

// Clock abstracts time so the controller is testable without sleeping.
type Clock interface {
	Now() time.Time
}

// Scheduler runs a function after a delay and hands back a cancel handle.
// Cancellation is tied to phase exit: the controller cancels every pending
// task belonging to a phase when that phase is left.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// CancelFunc stops a scheduled task. Calling it after the task has run, or
// more than once, is harmless.
type CancelFunc func()

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SystemScheduler returns a Scheduler backed by time.AfterFunc.
func SystemScheduler() Scheduler { return systemScheduler{} }
