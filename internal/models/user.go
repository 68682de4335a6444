package models

import "gorm.io/gorm"

// Role is a capability level granted to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// User represents a user in the system. Email is the login identifier.
type User struct {
	gorm.Model
	Email        string  `gorm:"size:255;unique;not null"`
	Nickname     string  `gorm:"size:64;unique;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	Role         Role    `gorm:"size:50;not null;default:'user';index"`
	Games        []*Game `gorm:"many2many:user_games;"`
}

// HasRole reports whether the user holds role r. Admins hold every role and
// moderators also hold the plain user role.
func (u *User) HasRole(r Role) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleModerator:
		return r == RoleModerator || r == RoleUser
	default:
		return r == RoleUser
	}
}
