package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetweenSingleDay(t *testing.T) {
	d := date(2024, time.March, 15)

	seq, err := DaysBetween(d, d)
	require.NoError(t, err)

	got := slices.Collect(seq)
	assert.Equal(t, []time.Time{d}, got)
}

func TestDaysBetweenInvalidRange(t *testing.T) {
	_, err := DaysBetween(date(2024, time.March, 16), date(2024, time.March, 15))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDaysBetweenInclusiveRange(t *testing.T) {
	seq, err := DaysBetween(date(2024, time.January, 30), date(2024, time.February, 2))
	require.NoError(t, err)

	got := slices.Collect(seq)
	want := []time.Time{
		date(2024, time.January, 30),
		date(2024, time.January, 31),
		date(2024, time.February, 1),
		date(2024, time.February, 2),
	}
	assert.Equal(t, want, got)
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2024, time.June, 1, 23, 45, 0, 0, loc)
	end := time.Date(2024, time.June, 3, 0, 5, 0, 0, loc)

	seq, err := DaysBetween(start, end)
	require.NoError(t, err)

	got := slices.Collect(seq)
	require.Len(t, got, 3)
	for _, d := range got {
		assert.Equal(t, time.UTC, d.Location())
		assert.Zero(t, d.Hour())
	}
}

func TestDaysBetweenRestartable(t *testing.T) {
	seq, err := DaysBetween(date(2024, time.May, 1), date(2024, time.May, 5))
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, time.July, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.July, 4, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}
