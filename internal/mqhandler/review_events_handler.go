package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "fieldforce/contracts/mq"
	"fieldforce/internal/model"
	"fieldforce/internal/repository"
)

// ReviewEventsHandler logs the review-cycle events: task.submitted and
// task.resubmitted. These are user-initiated, so no dedup is needed.
type ReviewEventsHandler struct {
	logRepo *repository.NotificationLogRepository
	logger  *zap.Logger
}

func NewReviewEventsHandler(logRepo *repository.NotificationLogRepository, logger *zap.Logger) *ReviewEventsHandler {
	return &ReviewEventsHandler{logRepo: logRepo, logger: logger}
}

func (h *ReviewEventsHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var envelope struct {
		Kind       string                  `json:"kind"`
		Recipients []mqcontracts.Recipient `json:"recipients"`
		Payload    json.RawMessage         `json:"payload"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.logger.Error("Failed to unmarshal review event envelope", zap.Error(err))
		return err
	}

	var taskID, projectID int
	var message string
	switch envelope.Kind {
	case mqcontracts.KindTaskSubmitted:
		var p mqcontracts.TaskSubmittedPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		taskID, projectID = p.TaskID, p.ProjectID
		message = fmt.Sprintf("Task %q in project %q was submitted for review", p.TaskName, p.ProjectName)
	case mqcontracts.KindTaskResubmitted:
		var p mqcontracts.TaskResubmittedPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		taskID, projectID = p.TaskID, p.ProjectID
		message = fmt.Sprintf("Task %q in project %q was sent back: %s", p.TaskName, p.ProjectName, p.Remarks)
	default:
		h.logger.Warn("Ignoring unexpected event kind", zap.String("kind", envelope.Kind))
		return nil
	}

	h.logger.Info("Handling review event",
		zap.String("kind", envelope.Kind),
		zap.Int("task_id", taskID),
	)

	for _, r := range envelope.Recipients {
		entry := model.NotificationLog{
			Kind:      envelope.Kind,
			UserID:    r.UserID,
			TaskID:    taskID,
			ProjectID: projectID,
			Message:   message,
		}
		if err := h.logRepo.Insert(ctx, &entry); err != nil {
			h.logger.Error("Failed to log review notification",
				zap.Error(err),
				zap.Int("user_id", r.UserID),
			)
			return err
		}
	}
	return nil
}
