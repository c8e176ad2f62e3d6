package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDaily(t *testing.T) {
	rule := Rule{
		Frequency: Daily,
		Interval:  1,
		End:       EndCondition{Type: EndOccurrences, Occurrences: 3},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
	}
	assert.Equal(t, want, got)
}

func TestExpandDailyWithInterval(t *testing.T) {
	rule := Rule{
		Frequency: Daily,
		Interval:  3,
		End:       EndCondition{Type: EndOnDate, EndDate: date(2024, time.January, 8)},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)

	// The end date itself is inclusive: Jan 7 + 3 days lands past it.
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 4),
		date(2024, time.January, 7),
	}
	assert.Equal(t, want, got)
}

func TestExpandDailyEndDateInclusive(t *testing.T) {
	rule := Rule{
		Frequency: Daily,
		Interval:  2,
		End:       EndCondition{Type: EndOnDate, EndDate: date(2024, time.January, 5)},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 5), got[len(got)-1])
}

func TestExpandWeeklyAlternatingDays(t *testing.T) {
	// 2024-01-01 is a Monday.
	rule := Rule{
		Frequency:  Weekly,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
		End:        EndCondition{Type: EndOccurrences, Occurrences: 4},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.January, 1),  // Mon
		date(2024, time.January, 3),  // Wed
		date(2024, time.January, 8),  // Mon
		date(2024, time.January, 10), // Wed
	}
	assert.Equal(t, want, got)
}

func TestExpandWeeklyNeverStepsBackward(t *testing.T) {
	// Anchor on a Thursday with Monday selected: the first Monday emitted is
	// the following week's, not the one before the anchor.
	rule := Rule{
		Frequency:  Weekly,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Monday},
		End:        EndCondition{Type: EndOccurrences, Occurrences: 1},
	}

	got, err := Expand(rule, date(2024, time.January, 4))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, time.January, 8)}, got)
}

func TestExpandWeeklyNoDuplicates(t *testing.T) {
	rule := Rule{
		Frequency:  Weekly,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Friday, time.Friday},
		End:        EndCondition{Type: EndOccurrences, Occurrences: 2},
	}

	got, err := Expand(rule, date(2024, time.January, 5))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.January, 5),
		date(2024, time.January, 12),
	}
	assert.Equal(t, want, got)
}

func TestExpandMonthlyLastDayLeapYear(t *testing.T) {
	rule := Rule{
		Frequency:     Monthly,
		Interval:      1,
		MonthlyOption: LastDay,
		End:           EndCondition{Type: EndOccurrences, Occurrences: 3},
	}

	got, err := Expand(rule, date(2024, time.February, 1))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	}
	assert.Equal(t, want, got)
}

func TestExpandMonthlyFirstDay(t *testing.T) {
	rule := Rule{
		Frequency:     Monthly,
		Interval:      2,
		MonthlyOption: FirstDay,
		End:           EndCondition{Type: EndOccurrences, Occurrences: 3},
	}

	got, err := Expand(rule, date(2024, time.March, 1))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.March, 1),
		date(2024, time.May, 1),
		date(2024, time.July, 1),
	}
	assert.Equal(t, want, got)
}

func TestExpandMonthlyNthDay(t *testing.T) {
	rule := Rule{
		Frequency:     Monthly,
		Interval:      1,
		MonthlyOption: NthDay,
		DaysOfWeek:    []time.Weekday{time.Monday},
		NthOccurrence: 2,
		End:           EndCondition{Type: EndOccurrences, Occurrences: 2},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.January, 8),   // 2nd Monday of January
		date(2024, time.February, 12), // 2nd Monday of February
	}
	assert.Equal(t, want, got)
}

func TestExpandMonthlyNthDayOverflowSkipsMonth(t *testing.T) {
	// February 2024 has only four Thursdays; a 5th-Thursday rule skips it.
	rule := Rule{
		Frequency:     Monthly,
		Interval:      1,
		MonthlyOption: NthDay,
		DaysOfWeek:    []time.Weekday{time.Thursday},
		NthOccurrence: 5,
		End:           EndCondition{Type: EndOccurrences, Occurrences: 2},
	}

	got, err := Expand(rule, date(2024, time.February, 1))
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.February, 29), // 5th Thursday exists in Feb 2024 (leap)
		date(2024, time.May, 30),      // March and April have only four Thursdays
	}
	assert.Equal(t, want, got)
}

func TestExpandOneYearBound(t *testing.T) {
	rule := Rule{
		Frequency:     Monthly,
		Interval:      1,
		MonthlyOption: FirstDay,
		End:           EndCondition{Type: EndOneYear},
	}

	got, err := Expand(rule, date(2024, time.March, 1))
	require.NoError(t, err)

	require.NotEmpty(t, got)
	assert.Equal(t, date(2024, time.March, 1), got[0])
	// Anchor + 1 year is inclusive; nothing beyond it.
	assert.Equal(t, date(2025, time.March, 1), got[len(got)-1])
	assert.Len(t, got, 13)
}

func TestExpandDeterministic(t *testing.T) {
	rule := Rule{
		Frequency:  Weekly,
		Interval:   2,
		DaysOfWeek: []time.Weekday{time.Tuesday, time.Saturday},
		End:        EndCondition{Type: EndOneYear},
	}
	anchor := date(2024, time.April, 2)

	first, err := Expand(rule, anchor)
	require.NoError(t, err)
	second, err := Expand(rule, anchor)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpandAscendingAndDistinct(t *testing.T) {
	rule := Rule{
		Frequency:  Weekly,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Saturday, time.Tuesday}, // unsorted input
		End:        EndCondition{Type: EndOccurrences, Occurrences: 6},
	}

	got, err := Expand(rule, date(2024, time.April, 1))
	require.NoError(t, err)

	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Before(got[i]), "dates must be strictly ascending")
	}
}

func TestExpandEmptyOutcomeIsNotAnError(t *testing.T) {
	// End date before the anchor: nothing qualifies.
	rule := Rule{
		Frequency: Daily,
		Interval:  1,
		End:       EndCondition{Type: EndOnDate, EndDate: date(2023, time.December, 31)},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandIterationCap(t *testing.T) {
	// More occurrences than the cap allows: generation stops at the cap and
	// returns what it produced instead of looping.
	rule := Rule{
		Frequency: Daily,
		Interval:  1,
		End:       EndCondition{Type: EndOccurrences, Occurrences: 20000},
	}

	got, err := Expand(rule, date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Len(t, got, 10000)
}

func TestExpandInvalidRules(t *testing.T) {
	anchor := date(2024, time.January, 1)

	cases := []struct {
		name string
		rule Rule
	}{
		{"zero interval", Rule{Frequency: Daily, Interval: 0, End: EndCondition{Type: EndOneYear}}},
		{"unknown frequency", Rule{Frequency: "yearly", Interval: 1, End: EndCondition{Type: EndOneYear}}},
		{"weekly without days", Rule{Frequency: Weekly, Interval: 1, End: EndCondition{Type: EndOneYear}}},
		{"monthly without option", Rule{Frequency: Monthly, Interval: 1, End: EndCondition{Type: EndOneYear}}},
		{"nthDay without days", Rule{Frequency: Monthly, Interval: 1, MonthlyOption: NthDay, NthOccurrence: 1, End: EndCondition{Type: EndOneYear}}},
		{"nthDay without occurrence", Rule{Frequency: Monthly, Interval: 1, MonthlyOption: NthDay, DaysOfWeek: []time.Weekday{time.Monday}, End: EndCondition{Type: EndOneYear}}},
		{"endDate without date", Rule{Frequency: Daily, Interval: 1, End: EndCondition{Type: EndOnDate}}},
		{"occurrences without count", Rule{Frequency: Daily, Interval: 1, End: EndCondition{Type: EndOccurrences}}},
		{"unknown end condition", Rule{Frequency: Daily, Interval: 1, End: EndCondition{Type: "forever"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Expand(tc.rule, anchor)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}
