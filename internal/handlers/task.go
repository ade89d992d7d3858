package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     optionalTime `json:"due_date"`
	AssigneeID  optionalUint `json:"assignee_id"`
}

// UpdateTaskRequest is a partial update. Omitted fields are left alone and
// an explicit null clears due_date or assignee_id.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	DueDate     optionalTime `json:"due_date"`
	AssigneeID  optionalUint `json:"assignee_id"`
}

func (r UpdateTaskRequest) params() services.UpdateTaskParams {
	return services.UpdateTaskParams{
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		DueDate:       r.DueDate.Value,
		ClearDueDate:  r.DueDate.Set && r.DueDate.Value == nil,
		AssigneeID:    r.AssigneeID.Value,
		ClearAssignee: r.AssigneeID.Set && r.AssigneeID.Value == nil,
	}
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponses(tasks))
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	projectID, ok := h.idParam(ctx, "project_id")
	if !ok {
		return
	}

	var body CreateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, err.Error())
		return
	}

	task, err := h.svc.CreateTask(ctx.Request.Context(), userID, projectID, services.CreateTaskParams{
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate.Value,
		AssigneeID:  body.AssigneeID.Value,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(*task))
}

func (h *Handler) GetTask(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	taskID, ok := h.idParam(ctx, "task_id")
	if !ok {
		return
	}

	task, err := h.svc.GetTask(ctx.Request.Context(), userID, taskID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	taskID, ok := h.idParam(ctx, "task_id")
	if !ok {
		return
	}

	var body UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, err.Error())
		return
	}

	task, err := h.svc.UpdateTask(ctx.Request.Context(), userID, taskID, body.params())

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	taskID, ok := h.idParam(ctx, "task_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(ctx.Request.Context(), userID, taskID); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
