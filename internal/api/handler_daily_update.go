package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldforce/internal/lifecycle"
	"fieldforce/internal/repository"
)

type DailyUpdateHandler struct {
	engine     *lifecycle.Engine
	updateRepo *repository.DailyUpdateRepository
	logger     *zap.Logger
}

func NewDailyUpdateHandler(
	engine *lifecycle.Engine,
	updateRepo *repository.DailyUpdateRepository,
	logger *zap.Logger,
) *DailyUpdateHandler {
	return &DailyUpdateHandler{engine: engine, updateRepo: updateRepo, logger: logger}
}

// ListByTask handles GET /tasks/:id/daily-updates
func (h *DailyUpdateHandler) ListByTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	updates, err := h.updateRepo.ByTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_updates": updates})
}

// UpdateDistance handles PATCH /daily-updates/:id/distance
func (h *DailyUpdateHandler) UpdateDistance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		DistanceKm *float64 `json:"distance_km" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || *req.DistanceKm < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.engine.UpdateDistance(c.Request.Context(), id, *req.DistanceKm); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateManHours handles PATCH /daily-updates/:id/man-hours
func (h *DailyUpdateHandler) UpdateManHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		NoOfPerson int     `json:"no_of_person" binding:"required,min=1"`
		NoOfHours  float64 `json:"no_of_hours" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	mh, err := h.engine.UpdateManHours(c.Request.Context(), id, req.NoOfPerson, req.NoOfHours)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"man_hours": mh})
}

// AddPhotos handles POST /daily-updates/:id/photos
func (h *DailyUpdateHandler) AddPhotos(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Photos []string `json:"photos" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.updateRepo.AddPhotos(c.Request.Context(), id, req.Photos); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
