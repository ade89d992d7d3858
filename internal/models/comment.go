package models

type Comment struct {
	BaseModel

	TaskID uint   `gorm:"not null;index"`
	UserID uint   `gorm:"not null;index"`
	Text   string `gorm:"type:text;not null"`
}
