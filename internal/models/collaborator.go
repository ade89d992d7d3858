package models

const RoleMember = "member"

// Collaborator grants a non-owner User access to a Project. The owner is
// never stored here.
type Collaborator struct {
	BaseModel

	UserID    uint   `gorm:"not null;uniqueIndex:idx_collaborator_user_project"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_collaborator_user_project;index"`
	Role      string `gorm:"not null;default:member"`
}
