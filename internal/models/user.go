package models

import (
	"time"
)

// Roles assignable at signup. A user's role is fixed at creation; later
// logins never change it, even when a different role is requested.
const (
	RoleUser    = "user"
	RoleCreator = "creator"
)

// User is an authentication identity, distinct from Creator. OAuth-only
// accounts carry an empty password hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	Role      string    `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleCreator
}
