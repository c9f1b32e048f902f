package models

import (
	"time"
)

// Like represents a user's like on a theory.
// The combination of UserID and TheoryID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_theory" json:"user_id"`
	TheoryID  uint      `gorm:"not null;uniqueIndex:idx_user_theory" json:"theory_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Theory Theory `gorm:"foreignKey:TheoryID" json:"theory"`
}
