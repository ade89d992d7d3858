package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// tickClock advances one second per reading so timestamps are strictly
// increasing.
type tickClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	database, err := db.Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file::memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	require.NoError(t, db.Migrate(database))

	clock := &tickClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := New(database, zerolog.Nop(), auth.BcryptHasher{Cost: bcrypt.MinCost}, WithClock(clock.Now))
	return svc, database
}

func mustRegister(t *testing.T, svc *Service, name string) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), RegisterParams{
		FirstName: name,
		LastName:  "Tester",
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  "password-" + name,
	})
	require.NoError(t, err)
	return user
}

func mustCreateProject(t *testing.T, svc *Service, ownerID uint, name string) *models.Project {
	t.Helper()

	project, err := svc.CreateProject(context.Background(), ownerID, name, "")
	require.NoError(t, err)
	return project
}

func mustCreateTask(t *testing.T, svc *Service, callerID, projectID uint, title string) *models.Task {
	t.Helper()

	task, err := svc.CreateTask(context.Background(), callerID, projectID, CreateTaskParams{Title: title})
	require.NoError(t, err)
	return task
}

func countRows(t *testing.T, database *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func ptr[T any](v T) *T {
	return &v
}
