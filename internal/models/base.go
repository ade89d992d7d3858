package models

import "time"

// BaseModel replaces gorm.Model: rows are removed permanently, so there is
// no DeletedAt column.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}
