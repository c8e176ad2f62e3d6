package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldforce/internal/model"
)

func task(stage model.Stage, status model.TaskStatus) model.Task {
	return model.Task{Stage: stage, Status: status}
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.Task
		want  model.ProjectStatus
	}{
		{
			name:  "no tasks",
			tasks: nil,
			want:  model.ProjectToStart,
		},
		{
			name: "all completed",
			tasks: []model.Task{
				task(model.StagePreRequisites, model.StatusCompleted),
				task(model.StageInstallation, model.StatusCompleted),
			},
			want: model.ProjectMaintenance,
		},
		{
			name: "completed and to-review",
			tasks: []model.Task{
				task(model.StageInstallation, model.StatusCompleted),
				task(model.StageInstallation, model.StatusToReview),
			},
			want: model.ProjectMaintenance,
		},
		{
			name: "one ongoing task",
			tasks: []model.Task{
				task(model.StagePreRequisites, model.StatusCompleted),
				task(model.StageInstallation, model.StatusOngoing),
			},
			want: model.ProjectOngoing,
		},
		{
			name: "delayed with pending to-do",
			tasks: []model.Task{
				task(model.StageInstallation, model.StatusDelayed),
				task(model.StageInstallation, model.StatusToDo),
			},
			want: model.ProjectToStart,
		},
		{
			name: "only delayed tasks",
			tasks: []model.Task{
				task(model.StageInstallation, model.StatusDelayed),
			},
			want: model.ProjectMaintenance,
		},
		{
			name: "only to-do tasks",
			tasks: []model.Task{
				task(model.StagePreRequisites, model.StatusToDo),
			},
			want: model.ProjectToStart,
		},
		{
			name: "pending maintenance visits do not block maintenance",
			tasks: []model.Task{
				task(model.StageInstallation, model.StatusCompleted),
				task(model.StageMaintenance, model.StatusToDo),
			},
			want: model.ProjectMaintenance,
		},
		{
			name: "ongoing maintenance visit makes the project ongoing",
			tasks: []model.Task{
				task(model.StageInstallation, model.StatusCompleted),
				task(model.StageMaintenance, model.StatusOngoing),
			},
			want: model.ProjectOngoing,
		},
		{
			name: "pending installation work blocks maintenance",
			tasks: []model.Task{
				task(model.StageInstallation, model.StatusToDo),
				task(model.StageMaintenance, model.StatusCompleted),
			},
			want: model.ProjectToStart,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AggregateStatus(tc.tasks))
		})
	}
}
