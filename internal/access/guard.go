// Package access holds the project authorization policy. It stores
// nothing; callers pass the transaction the decision must be made in.
package access

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// CanManageProject reports whether userID owns project. Only the owner may
// delete the project or change its collaborator set.
func CanManageProject(userID uint, project models.Project) bool {
	return userID != 0 && userID == project.OwnerID
}

// CanAccessProject reports whether userID owns project or holds a
// collaborator grant on it.
func CanAccessProject(ctx context.Context, tx *gorm.DB, userID uint, project models.Project) (bool, error) {
	if CanManageProject(userID, project) {
		return true, nil
	}
	if userID == 0 {
		return false, nil
	}

	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Collaborator{}).
		Where("user_id = ? AND project_id = ?", userID, project.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
