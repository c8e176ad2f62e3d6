// Package calendar provides day-granularity date arithmetic. All lifecycle
// decisions compare calendar days, never wall-clock instants, so every date
// entering the engine is normalized to midnight UTC first.
package calendar

import (
	"errors"
	"iter"
	"time"
)

var ErrInvalidRange = errors.New("start date is after end date")

// Day truncates t to midnight UTC, discarding time-of-day and zone noise.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween returns a restartable sequence of every calendar day from start
// to end inclusive, each normalized to midnight UTC.
func DaysBetween(start, end time.Time) (iter.Seq[time.Time], error) {
	first := Day(start)
	last := Day(end)
	if first.After(last) {
		return nil, ErrInvalidRange
	}

	seq := func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
	return seq, nil
}
