package api

import (
	scanDelivery "taskbot-backend/internal/scan/delivery"
	scanRepo "taskbot-backend/internal/scan/repository"
	scanUsecasePkg "taskbot-backend/internal/scan/usecase"
	todoDelivery "taskbot-backend/internal/todo/delivery"
	todoUsecasePkg "taskbot-backend/internal/todo/usecase"
	"taskbot-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	config      *config.Config
	todoHandler *todoDelivery.TodoHandler
	scanHandler *scanDelivery.ScanHandler
}

func NewHandler(cfg *config.Config, todoUc todoUsecasePkg.TodoUsecase, scanner *scanUsecasePkg.Scanner, configRepo scanRepo.SourceConfigRepository) *Handler {
	return &Handler{
		config:      cfg,
		todoHandler: todoDelivery.NewTodoHandler(todoUc),
		scanHandler: scanDelivery.NewScanHandler(scanner, configRepo),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.config, h.todoHandler, h.scanHandler)

	return r.Run(addr)
}
