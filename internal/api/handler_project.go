package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldforce/internal/lifecycle"
	"fieldforce/internal/model"
	"fieldforce/internal/repository"
)

type ProjectHandler struct {
	engine      *lifecycle.Engine
	projectRepo *repository.ProjectRepository
	taskRepo    *repository.TaskRepository
	logger      *zap.Logger
}

func NewProjectHandler(
	engine *lifecycle.Engine,
	projectRepo *repository.ProjectRepository,
	taskRepo *repository.TaskRepository,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		engine:      engine,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		StartDate   string `json:"start_date" binding:"required"`
		TeamMembers []struct {
			Role   string `json:"role" binding:"required"`
			UserID int    `json:"user_id" binding:"required"`
		} `json:"team_members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}

	p := model.Project{
		Name:      req.Name,
		Status:    model.ProjectToStart,
		StartDate: start,
	}
	for _, m := range req.TeamMembers {
		p.TeamMembers = append(p.TeamMembers, model.TeamMember{
			Role:   model.MemberRole(m.Role),
			UserID: m.UserID,
		})
	}

	if err := h.projectRepo.Insert(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.projectRepo.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List handles GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectRepo.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Tasks handles GET /projects/:id/tasks
func (h *ProjectHandler) Tasks(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tasks, err := h.taskRepo.ByProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Aggregate handles POST /projects/:id/aggregate, forcing a recompute.
func (h *ProjectHandler) Aggregate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.engine.AggregateProject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	p, err := h.projectRepo.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": p.Status})
}

// Archive handles POST /projects/:id/archive. Archive is an explicit
// override; the aggregator will not touch the project afterwards.
func (h *ProjectHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.projectRepo.SaveStatus(c.Request.Context(), id, model.ProjectArchive); err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("Project archived", zap.Int("project_id", id))
	c.JSON(http.StatusOK, gin.H{"status": string(model.ProjectArchive)})
}
