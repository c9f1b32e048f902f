package models

import (
	"time"
)

// GeneratedTheory is the audit record kept for each generator invocation:
// the raw keyword prompt and the text it produced.
type GeneratedTheory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Prompt        string    `gorm:"not null" json:"prompt"`
	GeneratedText string    `gorm:"not null" json:"generated_text"`
	UserID        *uint     `json:"user_id,omitempty"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
