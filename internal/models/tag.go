package models

import "time"

// Tag is a named label shared across theories. Names are unique; the
// reconciliation step relies on the index to resolve concurrent creates.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
