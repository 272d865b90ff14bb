// Package engagement scores the health of stored documents and
// aggregates those scores into portfolio-level preparedness, gap
// suggestions and user-facing feeds. Every function here is pure:
// "now" is an explicit parameter and no call performs I/O, so results
// are deterministic for fixed inputs and safe to compute concurrently.
package engagement

import "time"

const day = 24 * time.Hour

// ceilDays converts a duration to whole days, rounding partial days up
// toward positive infinity. Truncation toward zero already behaves as
// ceil for negative durations.
func ceilDays(d time.Duration) int {
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	return days
}

// daysUntil is the number of days from now until t; negative when t is
// in the past.
func daysUntil(now, t time.Time) int {
	return ceilDays(t.Sub(now))
}

// daysSince is the number of days elapsed from t until now.
func daysSince(now, t time.Time) int {
	return ceilDays(now.Sub(t))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
