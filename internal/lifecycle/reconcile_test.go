package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldforce/internal/model"
)

func ledgerFor(taskID int, days ...time.Time) []model.DailyUpdate {
	out := make([]model.DailyUpdate, len(days))
	for i, d := range days {
		out[i] = model.DailyUpdate{ID: i + 1, TaskID: taskID, Date: d}
	}
	return out
}

func TestPlanReconcileSeedsEmptyLedger(t *testing.T) {
	task := &model.Task{
		ID:        7,
		StartDate: dayPtr(2024, time.January, 1),
		EndDate:   dayPtr(2024, time.January, 5),
	}

	plan, err := PlanReconcile(task, nil)
	require.NoError(t, err)

	assert.Empty(t, plan.Deletes)
	require.Len(t, plan.Creates, 5)
	for i, u := range plan.Creates {
		assert.Equal(t, 7, u.TaskID)
		assert.Equal(t, day(2024, time.January, 1+i), u.Date)
	}
}

func TestPlanReconcileIdempotent(t *testing.T) {
	task := &model.Task{
		ID:        7,
		StartDate: dayPtr(2024, time.January, 1),
		EndDate:   dayPtr(2024, time.January, 3),
	}
	existing := ledgerFor(7,
		day(2024, time.January, 1),
		day(2024, time.January, 2),
		day(2024, time.January, 3),
	)

	plan, err := PlanReconcile(task, existing)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestPlanReconcileShiftKeepsOverlap(t *testing.T) {
	task := &model.Task{
		ID:        7,
		StartDate: dayPtr(2024, time.January, 3),
		EndDate:   dayPtr(2024, time.January, 7),
	}
	// Ledger still covers the old range Jan 1 - Jan 5.
	existing := ledgerFor(7,
		day(2024, time.January, 1),
		day(2024, time.January, 2),
		day(2024, time.January, 3),
		day(2024, time.January, 4),
		day(2024, time.January, 5),
	)

	plan, err := PlanReconcile(task, existing)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{1, 2}, plan.Deletes)
	require.Len(t, plan.Creates, 2)
	assert.Equal(t, day(2024, time.January, 6), plan.Creates[0].Date)
	assert.Equal(t, day(2024, time.January, 7), plan.Creates[1].Date)
}

func TestPlanReconcileMatchesEntriesByDayNotInstant(t *testing.T) {
	task := &model.Task{
		ID:        7,
		StartDate: dayPtr(2024, time.January, 1),
		EndDate:   dayPtr(2024, time.January, 2),
	}
	existing := []model.DailyUpdate{
		{ID: 1, TaskID: 7, Date: time.Date(2024, time.January, 1, 14, 30, 0, 0, time.UTC)},
		{ID: 2, TaskID: 7, Date: time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)},
	}

	plan, err := PlanReconcile(task, existing)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestPlanReconcileWithoutDates(t *testing.T) {
	task := &model.Task{ID: 7}
	existing := ledgerFor(7, day(2024, time.January, 1))

	plan, err := PlanReconcile(task, existing)
	require.NoError(t, err)
	assert.True(t, plan.Empty(), "a task without a range must not touch its ledger")
}

func TestPlanReconcileInvertedRange(t *testing.T) {
	task := &model.Task{
		ID:        7,
		StartDate: dayPtr(2024, time.January, 5),
		EndDate:   dayPtr(2024, time.January, 1),
	}

	_, err := PlanReconcile(task, nil)
	assert.Error(t, err)
}
