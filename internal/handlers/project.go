package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/types"
)

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, "Invalid request")
		return
	}

	project, err := h.svc.CreateProject(ctx.Request.Context(), userID, body.Name, body.Description)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewProjectResponse(*project))
}

// ListProjects returns the projects the caller owns or collaborates on.
func (h *Handler) ListProjects(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projects, err := h.svc.ListProjectsVisibleTo(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponses(projects))
}

func (h *Handler) GetProject(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	project, err := h.svc.GetProjectFor(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	tasks, err := h.svc.ListTasks(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project": types.NewProjectResponse(*project),
		"tasks":   types.NewTaskResponses(tasks),
	})
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteProject(ctx.Request.Context(), userID, projectID); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
