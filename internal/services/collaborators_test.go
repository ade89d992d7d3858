package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestAddCollaborator(t *testing.T) {
	svc, database := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")
	bob := mustRegister(t, svc, "bob")
	project := mustCreateProject(t, svc, ada.ID, "Launch")

	collaborator, err := svc.AddCollaborator(ctx, ada.ID, project.ID, "BOB@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, collaborator.UserID)
	assert.Equal(t, project.ID, collaborator.ProjectID)
	assert.Equal(t, models.RoleMember, collaborator.Role)

	_, err = svc.AddCollaborator(ctx, ada.ID, project.ID, bob.Email)
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, int64(1), countRows(t, database, &models.Collaborator{},
		"user_id = ? AND project_id = ?", bob.ID, project.ID))
}

func TestAddCollaborator_Errors(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")
	bob := mustRegister(t, svc, "bob")
	eve := mustRegister(t, svc, "eve")
	project := mustCreateProject(t, svc, ada.ID, "Launch")

	_, err := svc.AddCollaborator(ctx, ada.ID, project.ID, bob.Email)
	require.NoError(t, err)

	tests := []struct {
		name        string
		requesterID uint
		projectID   uint
		email       string
		want        error
	}{
		{"missing project", ada.ID, 999, eve.Email, ErrNotFound},
		{"stranger", eve.ID, project.ID, eve.Email, ErrForbidden},
		{"collaborator cannot delegate", bob.ID, project.ID, eve.Email, ErrForbidden},
		{"unknown email", ada.ID, project.ID, "nobody@example.com", ErrNotFound},
		{"owner is implicit", ada.ID, project.ID, ada.Email, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddCollaborator(ctx, tt.requesterID, tt.projectID, tt.email)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAddCollaborator_ConcurrentDuplicate(t *testing.T) {
	svc, database := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")
	bob := mustRegister(t, svc, "bob")
	project := mustCreateProject(t, svc, ada.ID, "Launch")

	const attempts = 4
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AddCollaborator(ctx, ada.ID, project.ID, bob.Email)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case KindOf(err) == KindConflict:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
	assert.Equal(t, int64(1), countRows(t, database, &models.Collaborator{},
		"user_id = ? AND project_id = ?", bob.ID, project.ID))
}

func TestUniqueIndexRejectsDuplicateGrant(t *testing.T) {
	svc, database := setupTestService(t)

	ada := mustRegister(t, svc, "ada")
	bob := mustRegister(t, svc, "bob")
	project := mustCreateProject(t, svc, ada.ID, "Launch")

	first := models.Collaborator{UserID: bob.ID, ProjectID: project.ID, Role: models.RoleMember}
	require.NoError(t, database.Create(&first).Error)

	second := models.Collaborator{UserID: bob.ID, ProjectID: project.ID, Role: models.RoleMember}
	err := database.Create(&second).Error
	assert.True(t, isUniqueViolation(err), "expected unique violation, got %v", err)
}

func TestListAndRemoveCollaborators(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")
	bob := mustRegister(t, svc, "bob")
	eve := mustRegister(t, svc, "eve")
	project := mustCreateProject(t, svc, ada.ID, "Launch")

	_, err := svc.AddCollaborator(ctx, ada.ID, project.ID, bob.Email)
	require.NoError(t, err)

	list, err := svc.ListCollaborators(ctx, bob.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bob.ID, list[0].UserID)

	_, err = svc.ListCollaborators(ctx, eve.ID, project.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.RemoveCollaborator(ctx, bob.ID, project.ID, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.RemoveCollaborator(ctx, ada.ID, project.ID, bob.ID))

	err = svc.RemoveCollaborator(ctx, ada.ID, project.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListTasks(ctx, bob.ID, project.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
