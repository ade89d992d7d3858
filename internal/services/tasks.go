package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/models"
)

type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssigneeID  *uint
}

// UpdateTaskParams is a partial update: nil fields are left untouched.
// ClearDueDate and ClearAssignee reset the optional fields to null.
type UpdateTaskParams struct {
	Title         *string
	Description   *string
	Status        *string
	DueDate       *time.Time
	ClearDueDate  bool
	AssigneeID    *uint
	ClearAssignee bool
}

// requireAssignee checks the assignee exists. Project membership is not
// required to be assigned a task.
func requireAssignee(tx *gorm.DB, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}

	if err := tx.Select("id").First(&models.User{}, *assigneeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "assignee not found")
		}
		return err
	}
	return nil
}

func (s *Service) ListTasks(ctx context.Context, callerID, projectID uint) ([]models.Task, error) {
	db := s.conn(ctx)

	project, err := loadProject(db, projectID)
	if err != nil {
		return nil, err
	}

	if err := requireAccess(ctx, db, callerID, project); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0)
	if err := db.Where("project_id = ?", project.ID).Order("id").Find(&tasks).Error; err != nil {
		s.logger.Error().
			Err(err).
			Uint("project_id", projectID).
			Msg("failed to list tasks")
		return nil, err
	}

	return tasks, nil
}

func (s *Service) GetTask(ctx context.Context, callerID, taskID uint) (*models.Task, error) {
	task, err := loadAccessibleTask(ctx, s.conn(ctx), callerID, taskID)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Service) CreateTask(ctx context.Context, callerID, projectID uint, params CreateTaskParams) (*models.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, newError(KindValidation, "task title is required")
	}

	now := s.now()
	task := models.Task{
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Status:      models.TaskStatusPending,
		DueDate:     params.DueDate,
		AssigneeID:  params.AssigneeID,
		ProjectID:   projectID,
		UpdatedAt:   now,
	}
	task.CreatedAt = now

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectID)
		if err != nil {
			return err
		}

		if err := requireAccess(ctx, tx, callerID, project); err != nil {
			return err
		}

		if err := requireAssignee(tx, task.AssigneeID); err != nil {
			return err
		}

		return tx.Create(&task).Error
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("project_id", projectID).
				Msg("failed to create task")
		}
		return nil, err
	}

	s.logger.Info().
		Uint("task_id", task.ID).
		Uint("project_id", projectID).
		Msg("created task")
	return &task, nil
}

// UpdateTask applies only the supplied fields. updated_at is refreshed on
// every successful call, whichever fields changed.
func (s *Service) UpdateTask(ctx context.Context, callerID, taskID uint, params UpdateTaskParams) (*models.Task, error) {
	var task models.Task

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		task, err = loadAccessibleTask(ctx, tx, callerID, taskID)
		if err != nil {
			return err
		}

		if params.Title != nil {
			title := strings.TrimSpace(*params.Title)
			if title == "" {
				return newError(KindValidation, "task title cannot be blank")
			}
			task.Title = title
		}

		if params.Description != nil {
			task.Description = strings.TrimSpace(*params.Description)
		}

		if params.Status != nil {
			if !models.IsValidTaskStatus(*params.Status) {
				return newError(KindValidation, "invalid task status %q", *params.Status)
			}
			task.Status = *params.Status
		}

		switch {
		case params.ClearDueDate:
			task.DueDate = nil
		case params.DueDate != nil:
			task.DueDate = params.DueDate
		}

		switch {
		case params.ClearAssignee:
			task.AssigneeID = nil
		case params.AssigneeID != nil:
			if err := requireAssignee(tx, params.AssigneeID); err != nil {
				return err
			}
			task.AssigneeID = params.AssigneeID
		}

		task.UpdatedAt = s.now()

		return tx.Save(&task).Error
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("task_id", taskID).
				Msg("failed to update task")
		}
		return nil, err
	}

	s.logger.Info().
		Uint("task_id", task.ID).
		Uint("user_id", callerID).
		Msg("updated task")
	return &task, nil
}

// DeleteTask removes a task and all of its comments.
func (s *Service) DeleteTask(ctx context.Context, callerID, taskID uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		task, err := loadAccessibleTask(ctx, tx, callerID, taskID)
		if err != nil {
			return err
		}

		return deleteTasks(tx, []uint{task.ID})
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("task_id", taskID).
				Msg("failed to delete task")
		}
		return err
	}

	s.logger.Info().
		Uint("task_id", taskID).
		Uint("user_id", callerID).
		Msg("deleted task")
	return nil
}
