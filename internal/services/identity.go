package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/models"
)

type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a user with a hashed credential.
//
// It returns a validation error if any field is blank and a conflict if
// the email is already registered.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	user := models.User{
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Email:     normalizeEmail(params.Email),
	}

	switch {
	case user.FirstName == "":
		return nil, newError(KindValidation, "first_name is required")
	case user.LastName == "":
		return nil, newError(KindValidation, "last_name is required")
	case user.Email == "":
		return nil, newError(KindValidation, "email is required")
	case isBlank(params.Password):
		return nil, newError(KindValidation, "password is required")
	}

	// Taken emails fail before hashing. The unique index still settles
	// concurrent registrations.
	var count int64
	if err := s.conn(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count users by email")
		return nil, err
	}
	if count > 0 {
		return nil, newError(KindConflict, "email already registered")
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.PasswordHash = hash

	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return newError(KindConflict, "email already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().
		Uint("user_id", user.ID).
		Msg("registered user")
	return &user, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// Authenticate returns the user whose email and password match. Unknown
// emails and wrong passwords fail with the same unauthorized error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	invalid := newError(KindUnauthorized, "invalid email or password")

	var user models.User
	err := s.conn(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error().
				Err(err).
				Msg("failed to select user by email")
			return nil, err
		}

		// Spend the same hashing work as a real comparison so response
		// timing does not reveal which emails exist.
		dummyHashOnce.Do(func() {
			dummyHash, _ = s.hasher.Hash("taskflow-dummy-password")
		})
		_, _ = s.hasher.Compare(password, dummyHash)
		return nil, invalid
	}

	ok, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("user_id", user.ID).
			Msg("failed to compare password")
		return nil, err
	}
	if !ok {
		s.logger.Debug().
			Uint("user_id", user.ID).
			Msg("password mismatch")
		return nil, invalid
	}

	return &user, nil
}

func (s *Service) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User

	if err := s.conn(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "user not found")
		}
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes the caller's account after re-checking the password.
// Owned projects (with their tasks, comments and collaborators), tasks
// assigned to the user, comments the user wrote and the user's
// collaborator grants are removed in the same transaction.
func (s *Service) DeleteUser(ctx context.Context, callerID uint, password string) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, callerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(KindNotFound, "user not found")
			}
			return err
		}

		ok, err := s.hasher.Compare(password, user.PasswordHash)
		if err != nil {
			return err
		}
		if !ok {
			return newError(KindUnauthorized, "incorrect password")
		}

		return deleteUser(tx, user.ID)
	})
	if err != nil {
		if KindOf(err) == "" {
			s.logger.Error().
				Err(err).
				Uint("user_id", callerID).
				Msg("failed to delete user")
		}
		return err
	}

	s.logger.Info().
		Uint("user_id", callerID).
		Msg("deleted user")
	return nil
}

func deleteUser(tx *gorm.DB, userID uint) error {
	var projectIDs []uint
	if err := tx.Model(&models.Project{}).Where("owner_id = ?", userID).Pluck("id", &projectIDs).Error; err != nil {
		return err
	}
	if err := deleteProjects(tx, projectIDs); err != nil {
		return err
	}

	var taskIDs []uint
	if err := tx.Model(&models.Task{}).Where("assignee_id = ?", userID).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := deleteTasks(tx, taskIDs); err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Collaborator{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.User{}, userID).Error
}
