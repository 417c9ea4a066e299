package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) StartBots(c *gin.Context) {
	h.manager.StartAllBots()
	c.JSON(http.StatusOK, gin.H{
		"status": "started",
		"bots":   h.manager.Stats(),
	})
}

func (h *Handler) StopBots(c *gin.Context) {
	h.manager.StopAllBots()
	c.JSON(http.StatusOK, gin.H{
		"status": "stopped",
		"bots":   h.manager.Stats(),
	})
}

func (h *Handler) BotStats(c *gin.Context) {
	stats := h.manager.Stats()
	c.JSON(http.StatusOK, gin.H{
		"running": h.manager.Running(),
		"bots":    stats,
		"count":   len(stats),
	})
}
