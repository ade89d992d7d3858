package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/types"
)

type AddCollaboratorRequest struct {
	Email string `json:"email"`
}

func (h *Handler) ListCollaborators(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	collaborators, err := h.svc.ListCollaborators(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewCollaboratorResponses(collaborators))
}

// AddCollaborator grants the user registered under the given email access to
// the project. Only the owner may do this.
func (h *Handler) AddCollaborator(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	var body AddCollaboratorRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, "Invalid request")
		return
	}

	collaborator, err := h.svc.AddCollaborator(ctx.Request.Context(), userID, projectID, body.Email)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewCollaboratorResponse(*collaborator))
}

func (h *Handler) RemoveCollaborator(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	collaboratorID, ok := h.idParam(ctx, "user_id")
	if !ok {
		return
	}

	if err := h.svc.RemoveCollaborator(ctx.Request.Context(), userID, projectID, collaboratorID); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Collaborator removed successfully"})
}
