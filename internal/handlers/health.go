package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(ctx *gin.Context) {
	status, code := "ok", http.StatusOK

	if err := h.svc.Ping(ctx.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("database ping failed")
		status, code = "degraded", http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"message":   "TaskFlow is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
