package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "fieldforce/contracts/mq"
	"fieldforce/internal/model"
	"fieldforce/internal/repository"
	"fieldforce/pkg/util"
)

// TaskDelayedHandler records one notification log row per recipient of a
// task.delayed event. Redelivered messages are dropped by the deduper.
type TaskDelayedHandler struct {
	logRepo *repository.NotificationLogRepository
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewTaskDelayedHandler(
	logRepo *repository.NotificationLogRepository,
	deduper *util.Deduper,
	logger *zap.Logger,
) *TaskDelayedHandler {
	return &TaskDelayedHandler{logRepo: logRepo, deduper: deduper, logger: logger}
}

func (h *TaskDelayedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var envelope struct {
		Kind       string                         `json:"kind"`
		Recipients []mqcontracts.Recipient        `json:"recipients"`
		Payload    mqcontracts.TaskDelayedPayload `json:"payload"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.logger.Error("Failed to unmarshal task.delayed envelope", zap.Error(err))
		return err
	}
	p := envelope.Payload

	key := fmt.Sprintf("task:%d:delay:%d", p.TaskID, p.DelayDays)
	if !h.deduper.AcquireOnce(ctx, "task_delayed", key) {
		h.logger.Info("Skipping duplicate task.delayed event", zap.Int("task_id", p.TaskID))
		return nil
	}

	h.logger.Info("Handling task.delayed event",
		zap.Int("task_id", p.TaskID),
		zap.Int("delay_days", p.DelayDays),
		zap.Int("recipients", len(envelope.Recipients)),
	)

	message := fmt.Sprintf("Task %q in project %q is delayed by %d day(s)",
		p.TaskName, p.ProjectName, p.DelayDays)

	for _, r := range envelope.Recipients {
		entry := model.NotificationLog{
			Kind:      mqcontracts.KindTaskDelayed,
			UserID:    r.UserID,
			TaskID:    p.TaskID,
			ProjectID: p.ProjectID,
			Message:   message,
		}
		if err := h.logRepo.Insert(ctx, &entry); err != nil {
			h.logger.Error("Failed to log delayed notification",
				zap.Error(err),
				zap.Int("user_id", r.UserID),
			)
			return err
		}
	}
	return nil
}
