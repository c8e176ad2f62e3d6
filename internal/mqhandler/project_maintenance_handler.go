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

// ProjectMaintenanceHandler records the project.maintenance transition for
// every recipient.
type ProjectMaintenanceHandler struct {
	logRepo *repository.NotificationLogRepository
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewProjectMaintenanceHandler(
	logRepo *repository.NotificationLogRepository,
	deduper *util.Deduper,
	logger *zap.Logger,
) *ProjectMaintenanceHandler {
	return &ProjectMaintenanceHandler{logRepo: logRepo, deduper: deduper, logger: logger}
}

func (h *ProjectMaintenanceHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var envelope struct {
		Kind       string                                `json:"kind"`
		Recipients []mqcontracts.Recipient               `json:"recipients"`
		Payload    mqcontracts.ProjectMaintenancePayload `json:"payload"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.logger.Error("Failed to unmarshal project.maintenance envelope", zap.Error(err))
		return err
	}
	p := envelope.Payload

	key := fmt.Sprintf("project:%d:maintenance", p.ProjectID)
	if !h.deduper.AcquireOnce(ctx, "project_maintenance", key) {
		h.logger.Info("Skipping duplicate project.maintenance event",
			zap.Int("project_id", p.ProjectID),
		)
		return nil
	}

	h.logger.Info("Handling project.maintenance event",
		zap.Int("project_id", p.ProjectID),
		zap.Int("recipients", len(envelope.Recipients)),
	)

	message := fmt.Sprintf("Project %q has entered the maintenance phase", p.ProjectName)

	for _, r := range envelope.Recipients {
		entry := model.NotificationLog{
			Kind:      mqcontracts.KindProjectMaintenance,
			UserID:    r.UserID,
			ProjectID: p.ProjectID,
			Message:   message,
		}
		if err := h.logRepo.Insert(ctx, &entry); err != nil {
			h.logger.Error("Failed to log maintenance notification",
				zap.Error(err),
				zap.Int("user_id", r.UserID),
			)
			return err
		}
	}
	return nil
}
