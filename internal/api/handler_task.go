package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldforce/internal/lifecycle"
	"fieldforce/internal/model"
	"fieldforce/internal/recurrence"
	"fieldforce/internal/repository"
)

type TaskHandler struct {
	engine   *lifecycle.Engine
	taskRepo *repository.TaskRepository
	logger   *zap.Logger
}

func NewTaskHandler(engine *lifecycle.Engine, taskRepo *repository.TaskRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{engine: engine, taskRepo: taskRepo, logger: logger}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// Create handles POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		ProjectID        int     `json:"project_id" binding:"required"`
		Stage            string  `json:"stage" binding:"required"`
		Name             string  `json:"name" binding:"required"`
		StartDate        *string `json:"start_date"`
		EndDate          *string `json:"end_date"`
		PrimaryOwnerID   *int    `json:"primary_owner_id"`
		SecondaryOwnerID *int    `json:"secondary_owner_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	start, err := parseDatePtr(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date before start_date"})
		return
	}

	task := model.Task{
		ProjectID:        req.ProjectID,
		Stage:            model.Stage(req.Stage),
		Name:             req.Name,
		StartDate:        start,
		EndDate:          end,
		PrimaryOwnerID:   req.PrimaryOwnerID,
		SecondaryOwnerID: req.SecondaryOwnerID,
	}
	if err := h.engine.CreateTask(c.Request.Context(), time.Now(), &task); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// Get handles GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.taskRepo.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTimeline handles PATCH /tasks/:id/timeline
func (h *TaskHandler) UpdateTimeline(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	start, err := parseDatePtr(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date before start_date"})
		return
	}

	if err := h.engine.UpdateTimeline(c.Request.Context(), time.Now(), id, start, end); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SubmitForReview handles POST /tasks/:id/submit-for-review
func (h *TaskHandler) SubmitForReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.engine.SubmitForReview(c.Request.Context(), time.Now(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(model.StatusToReview)})
}

// Resubmit handles POST /tasks/:id/resubmit
func (h *TaskHandler) Resubmit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Remarks string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.engine.Resubmit(c.Request.Context(), time.Now(), id, req.Remarks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resubmitted"})
}

// MarkAsDone handles POST /tasks/:id/mark-done
func (h *TaskHandler) MarkAsDone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.engine.MarkAsDone(c.Request.Context(), time.Now(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(model.StatusCompleted)})
}

// ScheduleRecurring handles POST /tasks/schedule-recurring
func (h *TaskHandler) ScheduleRecurring(c *gin.Context) {
	var req struct {
		ProjectID        int             `json:"project_id" binding:"required"`
		Stage            string          `json:"stage" binding:"required"`
		Name             string          `json:"name" binding:"required"`
		PrimaryOwnerID   *int            `json:"primary_owner_id"`
		SecondaryOwnerID *int            `json:"secondary_owner_id"`
		Anchor           string          `json:"anchor" binding:"required"`
		Rule             recurrence.Rule `json:"rule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	anchor, err := parseDate(req.Anchor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor"})
		return
	}

	created, err := h.engine.ScheduleRecurring(c.Request.Context(), time.Now(), lifecycle.RecurringSchedule{
		ProjectID:        req.ProjectID,
		Stage:            model.Stage(req.Stage),
		Name:             req.Name,
		PrimaryOwnerID:   req.PrimaryOwnerID,
		SecondaryOwnerID: req.SecondaryOwnerID,
		Rule:             req.Rule,
		Anchor:           anchor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Recurring tasks scheduled",
		zap.Int("project_id", req.ProjectID),
		zap.Int("count", len(created)),
	)
	c.JSON(http.StatusCreated, gin.H{"tasks": created})
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.engine.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
