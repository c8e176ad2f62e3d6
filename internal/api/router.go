package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	projectHandler *ProjectHandler,
	dailyUpdateHandler *DailyUpdateHandler,
	jwtSecret string,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.POST("/tasks", taskHandler.Create)
		auth.GET("/tasks/:id", taskHandler.Get)
		auth.PATCH("/tasks/:id/timeline", taskHandler.UpdateTimeline)
		auth.POST("/tasks/:id/submit-for-review", taskHandler.SubmitForReview)
		auth.POST("/tasks/schedule-recurring", taskHandler.ScheduleRecurring)
		auth.GET("/tasks/:id/daily-updates", dailyUpdateHandler.ListByTask)

		auth.PATCH("/daily-updates/:id/distance", dailyUpdateHandler.UpdateDistance)
		auth.PATCH("/daily-updates/:id/man-hours", dailyUpdateHandler.UpdateManHours)
		auth.POST("/daily-updates/:id/photos", dailyUpdateHandler.AddPhotos)

		auth.GET("/projects", projectHandler.List)
		auth.GET("/projects/:id", projectHandler.Get)
		auth.GET("/projects/:id/tasks", projectHandler.Tasks)

		// Review decisions and destructive operations are manager territory.
		managers := auth.Group("/")
		managers.Use(RequireRole("Admin", "ProjectManager"))
		{
			managers.POST("/projects", projectHandler.Create)
			managers.POST("/projects/:id/aggregate", projectHandler.Aggregate)
			managers.POST("/projects/:id/archive", projectHandler.Archive)
			managers.POST("/tasks/:id/resubmit", taskHandler.Resubmit)
			managers.POST("/tasks/:id/mark-done", taskHandler.MarkAsDone)
			managers.DELETE("/tasks/:id", taskHandler.Delete)
		}
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
