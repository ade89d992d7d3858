package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func (s *Service) CreateProject(ctx context.Context, ownerID uint, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(KindValidation, "project name is required")
	}

	now := s.now()
	project := models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	project.CreatedAt = now
	project.UpdatedAt = now

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.User{}, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "owner not found")
			}
			return err
		}

		return tx.Create(&project).Error
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("owner_id", ownerID).
				Msg("failed to create project")
		}
		return nil, err
	}

	s.logger.Info().
		Uint("project_id", project.ID).
		Uint("owner_id", ownerID).
		Msg("created project")
	return &project, nil
}

// ListProjectsVisibleTo returns every project userID owns or collaborates
// on. A project appears once even if both hold.
func (s *Service) ListProjectsVisibleTo(ctx context.Context, userID uint) ([]models.Project, error) {
	db := s.conn(ctx)

	memberOf := db.Model(&models.Collaborator{}).
		Select("project_id").
		Where("user_id = ?", userID)

	projects := make([]models.Project, 0)
	err := db.Where("owner_id = ?", userID).
		Or("id IN (?)", memberOf).
		Order("id").
		Find(&projects).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("user_id", userID).
			Msg("failed to list projects")
		return nil, err
	}

	return projects, nil
}

func (s *Service) GetProject(ctx context.Context, projectID uint) (*models.Project, error) {
	project, err := loadProject(s.conn(ctx), projectID)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectFor is GetProject restricted to the owner and collaborators.
func (s *Service) GetProjectFor(ctx context.Context, callerID, projectID uint) (*models.Project, error) {
	db := s.conn(ctx)

	project, err := loadProject(db, projectID)
	if err != nil {
		return nil, err
	}

	if err := requireAccess(ctx, db, callerID, project); err != nil {
		return nil, err
	}

	return &project, nil
}

// DeleteProject removes a project with all its tasks, their comments and
// its collaborator rows. Only the owner may delete.
func (s *Service) DeleteProject(ctx context.Context, callerID, projectID uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectID)
		if err != nil {
			return err
		}

		if err := requireManage(callerID, project); err != nil {
			return err
		}

		return deleteProjects(tx, []uint{project.ID})
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("project_id", projectID).
				Msg("failed to delete project")
		}
		return err
	}

	s.logger.Info().
		Uint("project_id", projectID).
		Uint("user_id", callerID).
		Msg("deleted project")
	return nil
}
