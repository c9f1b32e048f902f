package models

import (
	"time"

	"gorm.io/gorm"
)

// Theory is a persisted conspiracy-narrative record.
type Theory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Content     string `gorm:"not null" json:"content"`
	CreatedByID *uint  `json:"created_by_id,omitempty"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Likes       int    `gorm:"not null;default:0" json:"likes"`
	Shares      int    `gorm:"not null;default:0" json:"shares"`
	// Tags is populated by the repository from the theory_tags join table,
	// ordered by submission position.
	Tags      []Tag          `gorm:"-" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TheoryTag links a theory to a tag. Position preserves the order in which
// tag names appeared in the submission.
type TheoryTag struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TheoryID uint `gorm:"not null;uniqueIndex:idx_theory_tag" json:"theory_id"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_theory_tag" json:"tag_id"`
	Position int  `gorm:"not null" json:"position"`
}
