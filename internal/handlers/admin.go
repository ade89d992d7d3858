package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/services"
)

// ListUsers is reserved for an admin role that does not exist yet, so every
// caller is refused.
func (h *Handler) ListUsers(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, errorBody(string(services.KindForbidden), "Admin access required"))
}
