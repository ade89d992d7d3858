package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

const kindInternal = "internal"

func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(kind, message string) gin.H {
	return gin.H{"error": gin.H{"kind": kind, "message": message}}
}

// respondError writes err as a JSON error body. Internal failures are
// logged and replaced by a generic message.
func (h *Handler) respondError(ctx *gin.Context, err error) {
	kind := services.KindOf(err)

	if kind == "" {
		logger := utils.GetLogger(ctx, h.logger)
		logger.Error().
			Err(err).
			Str("path", ctx.FullPath()).
			Msg("request failed")
		ctx.JSON(http.StatusInternalServerError, errorBody(kindInternal, "Internal server error"))
		return
	}

	ctx.JSON(statusForKind(kind), errorBody(string(kind), err.Error()))
}

func (h *Handler) respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, errorBody(string(services.KindValidation), message))
}

func (h *Handler) respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, errorBody(string(services.KindUnauthorized), "User not authenticated"))
}

// idParam reads a numeric path parameter, writing a 400 on failure.
func (h *Handler) idParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := utils.GetIDParam(ctx, name)
	if err != nil {
		h.respondBadRequest(ctx, err.Error())
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated caller, writing a 401 on failure.
func (h *Handler) currentUserID(ctx *gin.Context) (uint, bool) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		h.respondUnauthenticated(ctx)
		return 0, false
	}
	return userID, true
}
