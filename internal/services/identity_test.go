package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// countingHasher records how often Hash is called.
type countingHasher struct {
	auth.BcryptHasher
	hashes atomic.Int32
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashes.Add(1)
	return h.BcryptHasher.Hash(password)
}

func TestRegister(t *testing.T) {
	svc, database := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Email:     "  Ada@Example.COM ",
		Password:  "analytical-engine",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "analytical-engine", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	var stored models.User
	require.NoError(t, database.First(&stored, user.ID).Error)
	assert.NotContains(t, stored.PasswordHash, "analytical-engine")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, database := setupTestService(t)
	ctx := context.Background()

	mustRegister(t, svc, "ada")

	_, err := svc.Register(ctx, RegisterParams{
		FirstName: "Other",
		LastName:  "Ada",
		Email:     "ADA@example.com",
		Password:  "different",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(1), countRows(t, database, &models.User{}, "email = ?", "ada@example.com"))
}

func TestRegister_DuplicateEmailSkipsHashing(t *testing.T) {
	_, database := setupTestService(t)
	hasher := &countingHasher{BcryptHasher: auth.BcryptHasher{Cost: bcrypt.MinCost}}
	svc := New(database, zerolog.Nop(), hasher)
	ctx := context.Background()

	mustRegister(t, svc, "ada")
	require.Equal(t, int32(1), hasher.hashes.Load())

	_, err := svc.Register(ctx, RegisterParams{
		FirstName: "Other",
		LastName:  "Ada",
		Email:     "ada@example.com",
		Password:  "different",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int32(1), hasher.hashes.Load())
}

func TestRegister_BlankFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	base := RegisterParams{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret"}

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"first name", func(p *RegisterParams) { p.FirstName = " " }},
		{"last name", func(p *RegisterParams) { p.LastName = "" }},
		{"email", func(p *RegisterParams) { p.Email = "\t" }},
		{"password", func(p *RegisterParams) { p.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)

			_, err := svc.Register(ctx, params)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")

	user, err := svc.Authenticate(ctx, "ADA@example.com", "password-ada")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, user.ID)

	_, wrongPassword := svc.Authenticate(ctx, "ada@example.com", "nope")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@example.com", "password-ada")

	assert.ErrorIs(t, wrongPassword, ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser_Cascades(t *testing.T) {
	svc, database := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")
	bob := mustRegister(t, svc, "bob")

	// Ada owns one project; Bob owns another where Ada collaborates,
	// gets a task assigned and writes a comment.
	adaProject := mustCreateProject(t, svc, ada.ID, "Ada's")
	adaTask := mustCreateTask(t, svc, ada.ID, adaProject.ID, "ada task")
	_, err := svc.AddComment(ctx, ada.ID, adaTask.ID, "on my own task")
	require.NoError(t, err)

	bobProject := mustCreateProject(t, svc, bob.ID, "Bob's")
	_, err = svc.AddCollaborator(ctx, bob.ID, bobProject.ID, ada.Email)
	require.NoError(t, err)

	assigned, err := svc.CreateTask(ctx, bob.ID, bobProject.ID, CreateTaskParams{Title: "for ada", AssigneeID: &ada.ID})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, bob.ID, assigned.ID, "bob on assigned task")
	require.NoError(t, err)

	bobTask := mustCreateTask(t, svc, bob.ID, bobProject.ID, "bob task")
	_, err = svc.AddComment(ctx, ada.ID, bobTask.ID, "ada on bob task")
	require.NoError(t, err)
	bobComment, err := svc.AddComment(ctx, bob.ID, bobTask.ID, "bob on bob task")
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, ada.ID, "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.DeleteUser(ctx, ada.ID, "password-ada"))

	assert.Zero(t, countRows(t, database, &models.User{}, "id = ?", ada.ID))
	assert.Zero(t, countRows(t, database, &models.Project{}, "owner_id = ?", ada.ID))
	assert.Zero(t, countRows(t, database, &models.Task{}, "project_id = ?", adaProject.ID))
	assert.Zero(t, countRows(t, database, &models.Task{}, "assignee_id = ?", ada.ID))
	assert.Zero(t, countRows(t, database, &models.Comment{}, "user_id = ?", ada.ID))
	assert.Zero(t, countRows(t, database, &models.Comment{}, "task_id = ?", assigned.ID))
	assert.Zero(t, countRows(t, database, &models.Collaborator{}, "user_id = ?", ada.ID))

	// Bob's own data survives.
	assert.Equal(t, int64(1), countRows(t, database, &models.Project{}, "id = ?", bobProject.ID))
	assert.Equal(t, int64(1), countRows(t, database, &models.Task{}, "id = ?", bobTask.ID))
	assert.Equal(t, int64(1), countRows(t, database, &models.Comment{}, "id = ?", bobComment.ID))

	err = svc.DeleteUser(ctx, ada.ID, "password-ada")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser_WrongPasswordKeepsAccount(t *testing.T) {
	svc, database := setupTestService(t)
	ctx := context.Background()

	ada := mustRegister(t, svc, "ada")
	project := mustCreateProject(t, svc, ada.ID, "Launch")
	mustCreateTask(t, svc, ada.ID, project.ID, "kept")

	err := svc.DeleteUser(ctx, ada.ID, "password-bob")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, int64(1), countRows(t, database, &models.User{}, "id = ?", ada.ID))
	assert.Equal(t, int64(1), countRows(t, database, &models.Project{}, "id = ?", project.ID))
	assert.Equal(t, int64(1), countRows(t, database, &models.Task{}, "project_id = ?", project.ID))

	err = svc.DeleteUser(ctx, 9999, "password-ada")
	assert.ErrorIs(t, err, ErrNotFound)
}
