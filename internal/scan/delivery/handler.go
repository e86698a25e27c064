package delivery

import (
	"net/http"

	"taskbot-backend/internal/scan/repository"
	"taskbot-backend/internal/scan/usecase"

	"github.com/gin-gonic/gin"
)

// ScanHandler handles scan and source-config HTTP requests
type ScanHandler struct {
	scanner *usecase.Scanner
	configs repository.SourceConfigRepository
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanner *usecase.Scanner, configs repository.SourceConfigRepository) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		configs: configs,
	}
}

// TriggerScan runs a full workspace scan for the authenticated user
// POST /api/scan
func (h *ScanHandler) TriggerScan(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.scanner.RunPersonalScan(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleMessageEvent receives a realtime message event from the workspace
// POST /api/events/message
func (h *ScanHandler) HandleMessageEvent(c *gin.Context) {
	var ev usecase.MessageEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.scanner.HandleMessageEvent(c.Request.Context(), &ev)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if todo == nil {
		c.JSON(http.StatusOK, gin.H{"created": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": true, "todo": todo})
}

// GetSourceConfig returns the scanning preferences for a source
// GET /api/sources/:id/config
func (h *ScanHandler) GetSourceConfig(c *gin.Context) {
	sourceID := c.Param("id")

	config, err := h.configs.GetOrDefault(sourceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}

// UpdateSourceConfig stores scanning preferences for a source
// PUT /api/sources/:id/config
func (h *ScanHandler) UpdateSourceConfig(c *gin.Context) {
	sourceID := c.Param("id")

	var req struct {
		AutoDetect     *bool `json:"auto_detect"`
		NotifyOnCreate *bool `json:"notify_on_create"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := h.configs.GetOrDefault(sourceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.AutoDetect != nil {
		config.AutoDetect = *req.AutoDetect
	}
	if req.NotifyOnCreate != nil {
		config.NotifyOnCreate = *req.NotifyOnCreate
	}

	if err := h.configs.Upsert(config); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}
