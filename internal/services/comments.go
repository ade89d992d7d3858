package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// ListComments returns a task's comments oldest first.
func (s *Service) ListComments(ctx context.Context, callerID, taskID uint) ([]models.Comment, error) {
	db := s.conn(ctx)

	task, err := loadAccessibleTask(ctx, db, callerID, taskID)
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0)
	err = db.Where("task_id = ?", task.ID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to list comments")
		return nil, err
	}

	return comments, nil
}

// AddComment appends a comment by authorID. Comments cannot be edited
// afterwards; they disappear only with their task or author.
func (s *Service) AddComment(ctx context.Context, authorID, taskID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newError(KindValidation, "comment text is required")
	}

	comment := models.Comment{
		TaskID: taskID,
		UserID: authorID,
		Text:   text,
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := loadAccessibleTask(ctx, tx, authorID, taskID); err != nil {
			return err
		}

		comment.CreatedAt = s.now()
		return tx.Create(&comment).Error
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("task_id", taskID).
				Msg("failed to add comment")
		}
		return nil, err
	}

	s.logger.Info().
		Uint("comment_id", comment.ID).
		Uint("task_id", taskID).
		Msg("added comment")
	return &comment, nil
}
