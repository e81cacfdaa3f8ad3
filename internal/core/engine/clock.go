package engine

import "time"

// Timer represents a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock provides time operations, so tests can simulate wall-clock advance.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the default Clock backed by the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
