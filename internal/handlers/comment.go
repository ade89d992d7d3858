package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/types"
)

type AddCommentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) ListComments(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	taskID, ok := h.idParam(ctx, "task_id")
	if !ok {
		return
	}

	comments, err := h.svc.ListComments(ctx.Request.Context(), userID, taskID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewCommentResponses(comments))
}

func (h *Handler) AddComment(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	taskID, ok := h.idParam(ctx, "task_id")
	if !ok {
		return
	}

	var body AddCommentRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, "Invalid request")
		return
	}

	comment, err := h.svc.AddComment(ctx.Request.Context(), userID, taskID, body.Text)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewCommentResponse(*comment))
}
