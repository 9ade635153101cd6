package api

import (
	"pdftoolkit/config"
	"pdftoolkit/task"

	"github.com/gin-gonic/gin"
)

func SetupRouter(runner *task.Runner, status *Status, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	h := NewHandler(runner, status, cfg)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware(cfg))
	{
		// One task at a time; 409 while busy.
		v1.POST("/tasks", h.handleCreateTask)
		v1.GET("/tasks/active", h.handleGetActiveTask)
		v1.PATCH("/tasks/cancel", h.handleCancelTask)

		// Output download endpoint.
		v1.GET("/files/:filename", h.handleGetFile)
	}
	return r
}
