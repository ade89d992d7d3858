package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// Service implements the identity store, project registry, collaborator
// ledger, task board and comment log on top of one database. Every
// mutating method runs in a single transaction; a cascade either commits
// completely or not at all.
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
	hasher auth.PasswordHasher
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the source of created_at and updated_at values.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(db *gorm.DB, logger zerolog.Logger, hasher auth.PasswordHasher, opts ...Option) *Service {
	s := &Service{
		db:     db,
		logger: logger,
		hasher: hasher,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Service) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Ping reports whether the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func loadProject(tx *gorm.DB, projectID uint) (models.Project, error) {
	var project models.Project

	if err := tx.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, newError(KindNotFound, "project not found")
		}
		return models.Project{}, err
	}

	return project, nil
}

func loadTask(tx *gorm.DB, taskID uint) (models.Task, error) {
	var task models.Task

	if err := tx.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, newError(KindNotFound, "task not found")
		}
		return models.Task{}, err
	}

	return task, nil
}

func requireAccess(ctx context.Context, tx *gorm.DB, userID uint, project models.Project) error {
	ok, err := access.CanAccessProject(ctx, tx, userID, project)
	if err != nil {
		return err
	}
	if !ok {
		return newError(KindForbidden, "you do not have access to this project")
	}
	return nil
}

func requireManage(userID uint, project models.Project) error {
	if !access.CanManageProject(userID, project) {
		return newError(KindForbidden, "only the project owner can do this")
	}
	return nil
}

// loadAccessibleTask resolves a task and checks the caller may act on its
// project.
func loadAccessibleTask(ctx context.Context, tx *gorm.DB, userID, taskID uint) (models.Task, error) {
	task, err := loadTask(tx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	project, err := loadProject(tx, task.ProjectID)
	if err != nil {
		return models.Task{}, err
	}

	if err := requireAccess(ctx, tx, userID, project); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// deleteTasks removes the given tasks and every comment on them.
func deleteTasks(tx *gorm.DB, taskIDs []uint) error {
	if len(taskIDs) == 0 {
		return nil
	}

	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}

// deleteProjects removes the given projects with their tasks, comments and
// collaborator rows.
func deleteProjects(tx *gorm.DB, projectIDs []uint) error {
	if len(projectIDs) == 0 {
		return nil
	}

	var taskIDs []uint
	if err := tx.Model(&models.Task{}).Where("project_id IN ?", projectIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}

	if err := deleteTasks(tx, taskIDs); err != nil {
		return err
	}

	if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.Collaborator{}).Error; err != nil {
		return err
	}

	return tx.Where("id IN ?", projectIDs).Delete(&models.Project{}).Error
}
