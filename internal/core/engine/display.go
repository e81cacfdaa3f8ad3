package engine

import "fmt"

// Display is the render-ready view of a countdown. It is always derived from
// (remaining, total) and never stored.
type Display struct {
	Formatted string
	Hours     int
	Minutes   int
	Seconds   int
	Progress  float64
}

// deriveDisplay computes the display for a remaining/total pair, both in
// seconds. Sessions of an hour or more use the HH:MM:SS form for their whole
// run so the format never flips mid-session.
func deriveDisplay(remaining, total int) Display {
	if remaining < 0 {
		remaining = 0
	}

	display := Display{
		Seconds:  remaining % 60,
		Progress: progressPercent(remaining, total),
	}
	if total >= 3600 {
		display.Hours = remaining / 3600
		display.Minutes = (remaining % 3600) / 60
		display.Formatted = fmt.Sprintf("%d:%02d:%02d", display.Hours, display.Minutes, display.Seconds)
	} else {
		display.Minutes = remaining / 60
		display.Formatted = fmt.Sprintf("%02d:%02d", display.Minutes, display.Seconds)
	}
	return display
}

// FormatClock renders a second count as MM:SS, or HH:MM:SS when withHours is
// set.
func FormatClock(seconds int, withHours bool) string {
	if seconds < 0 {
		seconds = 0
	}
	if withHours {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// progressPercent returns elapsed progress in [0,100]. A zero total reports 0
// to avoid dividing by zero.
func progressPercent(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	percent := float64(total-remaining) / float64(total) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
