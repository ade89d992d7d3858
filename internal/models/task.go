package models

import "time"

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	BaseModel

	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:pending"`
	DueDate     *time.Time
	AssigneeID  *uint `gorm:"index"`
	ProjectID   uint  `gorm:"not null;index"`

	// Set explicitly on every mutation rather than by gorm.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	// Relationships
	Comments []Comment `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
