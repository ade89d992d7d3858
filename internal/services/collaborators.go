package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// AddCollaborator grants the user registered under email access to the
// project. Only the owner may add collaborators.
//
// A second grant for the same user and project fails with a conflict,
// including when two requests race: the unique index on
// (user_id, project_id) rejects the later insert.
func (s *Service) AddCollaborator(ctx context.Context, requesterID, projectID uint, email string) (*models.Collaborator, error) {
	var collaborator models.Collaborator

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectID)
		if err != nil {
			return err
		}

		if err := requireManage(requesterID, project); err != nil {
			return err
		}

		var user models.User
		if err := tx.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "user not found")
			}
			return err
		}

		if user.ID == project.OwnerID {
			return newError(KindConflict, "user already owns this project")
		}

		var count int64
		err = tx.Model(&models.Collaborator{}).
			Where("user_id = ? AND project_id = ?", user.ID, project.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return newError(KindConflict, "user is already a collaborator")
		}

		collaborator = models.Collaborator{
			UserID:    user.ID,
			ProjectID: project.ID,
			Role:      models.RoleMember,
		}
		collaborator.CreatedAt = s.now()

		if err := tx.Create(&collaborator).Error; err != nil {
			if isUniqueViolation(err) {
				return newError(KindConflict, "user is already a collaborator")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("project_id", projectID).
				Msg("failed to add collaborator")
		}
		return nil, err
	}

	s.logger.Info().
		Uint("project_id", projectID).
		Uint("user_id", collaborator.UserID).
		Msg("added collaborator")
	return &collaborator, nil
}

func (s *Service) ListCollaborators(ctx context.Context, callerID, projectID uint) ([]models.Collaborator, error) {
	db := s.conn(ctx)

	project, err := loadProject(db, projectID)
	if err != nil {
		return nil, err
	}

	if err := requireAccess(ctx, db, callerID, project); err != nil {
		return nil, err
	}

	collaborators := make([]models.Collaborator, 0)
	if err := db.Where("project_id = ?", project.ID).Order("id").Find(&collaborators).Error; err != nil {
		return nil, err
	}

	return collaborators, nil
}

// RemoveCollaborator revokes userID's grant on the project. Only the owner
// may remove collaborators.
func (s *Service) RemoveCollaborator(ctx context.Context, requesterID, projectID, userID uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectID)
		if err != nil {
			return err
		}

		if err := requireManage(requesterID, project); err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND project_id = ?", userID, project.ID).Delete(&models.Collaborator{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return newError(KindNotFound, "collaborator not found")
		}
		return nil
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("project_id", projectID).
				Msg("failed to remove collaborator")
		}
		return err
	}

	s.logger.Info().
		Uint("project_id", projectID).
		Uint("user_id", userID).
		Msg("removed collaborator")
	return nil
}
