// Package status derives the enrollment status of a course session from its dates and headcounts.
package status

import (
	"fmt"
	"time"
)

// Status labels shown to visitors.
const (
	LabelEnded   = "종료"
	LabelOngoing = "진행중"
	LabelClosed  = "모집 마감"
	LabelOpen    = "모집중"
	LabelUnknown = "정보 없음"
)

// Countdown values that are not a day count.
const (
	CountdownEnded        = "종료"
	CountdownOngoing      = "진행중"
	CountdownDDay         = "D-DAY"
	CountdownUndetermined = "미정"
)

// Result is the derived part of a course record.
type Result struct {
	Remaining int
	Label     string
	Countdown string
	IsClosed  bool
}

// Compute applies the status rules in order, first match wins:
// ended, ongoing, enrollment closed, open, unknown.
// A zero start or end means the date is not known.
func Compute(start, end time.Time, capacity, applied int, today time.Time) Result {
	res := Result{Remaining: Remaining(capacity, applied)}
	full := applied >= capacity

	today = Day(today)
	hasStart, hasEnd := !start.IsZero(), !end.IsZero()
	if hasStart {
		start = Day(start)
	}
	if hasEnd {
		end = Day(end)
	}

	switch {
	case hasEnd && end.Before(today):
		res.Label, res.Countdown, res.IsClosed = LabelEnded, CountdownEnded, true
	case hasStart && hasEnd && !start.After(today) && !end.Before(today):
		res.Label, res.Countdown, res.IsClosed = LabelOngoing, CountdownOngoing, full
	case full:
		res.Label, res.IsClosed = LabelClosed, true
		res.Countdown = CountdownDDay
		if hasStart && start.After(today) {
			res.Countdown = countdown(start, today)
		}
	case hasStart && start.After(today):
		res.Label, res.Countdown = LabelOpen, countdown(start, today)
	default:
		res.Label, res.Countdown = LabelUnknown, CountdownUndetermined
	}
	return res
}

// Remaining returns the free seats, never negative.
func Remaining(capacity, applied int) int {
	if applied >= capacity {
		return 0
	}
	return capacity - applied
}

// Day truncates t to its calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b, ignoring DST and clock time.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func countdown(start, today time.Time) string {
	return fmt.Sprintf("D-%d", DaysBetween(today, start))
}
