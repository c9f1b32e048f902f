package models

import (
	"time"
)

// AdminRole is the closed set of administrative roles.
type AdminRole string

const (
	AdminRoleModerator  AdminRole = "moderator"
	AdminRoleSuperadmin AdminRole = "superadmin"
)

// Valid reports whether the role is one of the known variants.
func (r AdminRole) Valid() bool {
	return r == AdminRoleModerator || r == AdminRoleSuperadmin
}

// CanManageAdmins reports whether the role may create or list admin accounts.
func (r AdminRole) CanManageAdmins() bool {
	return r == AdminRoleSuperadmin
}

// CanModerate reports whether the role may act on user content
// (tags, reports, comments, activity logs).
func (r AdminRole) CanModerate() bool {
	return r == AdminRoleModerator || r == AdminRoleSuperadmin
}

// Admin represents a staff account. Admins authenticate separately from
// users and are scoped to read/moderation paths.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      AdminRole `gorm:"not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
