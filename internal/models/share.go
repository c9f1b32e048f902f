package models

import (
	"time"
)

// Share records a theory being shared out to an external platform.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	TheoryID  uint      `gorm:"not null" json:"theory_id"`
	SharedTo  string    `gorm:"not null" json:"shared_to"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Theory Theory `gorm:"foreignKey:TheoryID" json:"theory"`
}
