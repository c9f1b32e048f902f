package models

import (
	"time"
)

// Report flags a theory for moderator review.
type Report struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReportedByID uint      `gorm:"not null" json:"reported_by_id"`
	TheoryID     uint      `gorm:"not null" json:"theory_id"`
	Reason       string    `gorm:"not null" json:"reason"`
	CreatedAt    time.Time `json:"created_at"`

	ReportedBy User   `gorm:"foreignKey:ReportedByID" json:"reported_by"`
	Theory     Theory `gorm:"foreignKey:TheoryID" json:"theory"`
}
