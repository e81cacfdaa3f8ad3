package model

import "time"

// Session duration bounds, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 999
)

// SessionConfig contains the planned shape of a meditation session.
type SessionConfig struct {
	InitialMinutes int
	AutoReset      bool
	AutoResetDelay time.Duration
}

// DefaultSessionConfig returns the out-of-the-box session shape.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		InitialMinutes: 15,
		AutoReset:      false,
		AutoResetDelay: 10 * time.Second,
	}
}

// ClampMinutes forces a minute count into the supported range.
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}
