package api

import (
	"net/http"

	"taskbot-backend/internal/auth/delivery"
	scanDelivery "taskbot-backend/internal/scan/delivery"
	todoDelivery "taskbot-backend/internal/todo/delivery"
	"taskbot-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, todoHandler *todoDelivery.TodoHandler, scanHandler *scanDelivery.ScanHandler) {
	authOnly := delivery.AuthMiddleware(cfg.JWTSecret)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(authOnly)
		{
			todos.GET("", todoHandler.GetTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/:id", todoHandler.GetTodoByID)
			todos.PUT("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
			todos.PATCH("/:id/status", todoHandler.UpdateTodoStatus)
			todos.POST("/:id/complete", todoHandler.CompleteTodo)
		}

		// Scan routes (protected) - workspace-wide task detection
		api.POST("/scan", authOnly, scanHandler.TriggerScan)

		// Realtime message events from the workspace (webhook, no user token)
		api.POST("/events/message", scanHandler.HandleMessageEvent)

		// Per-source scanning preferences (protected)
		sources := api.Group("/sources")
		sources.Use(authOnly)
		{
			sources.GET("/:id/config", scanHandler.GetSourceConfig)
			sources.PUT("/:id/config", scanHandler.UpdateSourceConfig)
		}
	}
}
