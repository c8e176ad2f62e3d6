// Package recurrence expands a repeat rule and an anchor date into a finite,
// ordered sequence of occurrence dates.
package recurrence

import (
	"fmt"
	"slices"
	"time"

	"fieldforce/internal/calendar"
)

// maxIterations bounds the outer stepping loop so a malformed rule can never
// spin forever; hitting the cap returns what was generated so far.
const maxIterations = 10000

// Expand computes the occurrence dates for rule starting at anchor. The
// result is deduplicated and ascending. An empty result is a valid outcome,
// not an error.
func Expand(rule Rule, anchor time.Time) ([]time.Time, error) {
	if err := rule.validate(); err != nil {
		return nil, err
	}
	if anchor.IsZero() {
		return nil, fmt.Errorf("%w: anchor date is unset", ErrInvalidRule)
	}

	start := calendar.Day(anchor)

	var maxEnd time.Time
	hasMax := false
	switch rule.End.Type {
	case EndOneYear:
		maxEnd = start.AddDate(1, 0, 0)
		hasMax = true
	case EndOnDate:
		maxEnd = calendar.Day(rule.End.EndDate)
		hasMax = true
	}

	maxOccurrences := 0
	if rule.End.Type == EndOccurrences {
		maxOccurrences = rule.End.Occurrences
	}

	var dates []time.Time
	seen := make(map[time.Time]struct{})

	// emit appends d unless it is a duplicate, past the end date, or past the
	// occurrence budget. It reports whether the caller may keep emitting.
	emit := func(d time.Time) bool {
		if maxOccurrences > 0 && len(dates) >= maxOccurrences {
			return false
		}
		if hasMax && d.After(maxEnd) {
			return true
		}
		if _, dup := seen[d]; dup {
			return true
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
		return maxOccurrences == 0 || len(dates) < maxOccurrences
	}

	switch rule.Frequency {
	case Daily:
		cursor := start
		for i := 0; i < maxIterations; i++ {
			if hasMax && cursor.After(maxEnd) {
				break
			}
			if !emit(cursor) {
				break
			}
			cursor = cursor.AddDate(0, 0, rule.Interval)
		}

	case Weekly:
		cursor := start
	weeks:
		for i := 0; i < maxIterations; i++ {
			if hasMax && cursor.After(maxEnd) {
				break
			}
			for _, wd := range rule.DaysOfWeek {
				// Forward to the next occurrence of wd, never backward.
				offset := (int(wd) - int(cursor.Weekday()) + 7) % 7
				if !emit(cursor.AddDate(0, 0, offset)) {
					break weeks
				}
			}
			cursor = cursor.AddDate(0, 0, 7*rule.Interval)
		}

	case Monthly:
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < maxIterations; i++ {
			if hasMax && month.After(maxEnd) {
				break
			}
			d, ok := monthlyDate(rule, month)
			if ok && !emit(d) {
				break
			}
			month = month.AddDate(0, rule.Interval, 0)
		}
	}

	slices.SortFunc(dates, time.Time.Compare)
	return dates, nil
}

// monthlyDate resolves the rule's occurrence within the month starting at
// firstOfMonth. ok is false when the nth weekday overflows the month.
func monthlyDate(rule Rule, firstOfMonth time.Time) (time.Time, bool) {
	switch rule.MonthlyOption {
	case FirstDay:
		return firstOfMonth, true
	case LastDay:
		return firstOfMonth.AddDate(0, 1, -1), true
	case NthDay:
		target := rule.DaysOfWeek[0]
		offset := (int(target) - int(firstOfMonth.Weekday()) + 7) % 7
		d := firstOfMonth.AddDate(0, 0, offset+(rule.NthOccurrence-1)*7)
		if d.Month() != firstOfMonth.Month() {
			return time.Time{}, false
		}
		return d, true
	}
	return time.Time{}, false
}
