package domain

import (
	"errors"
	"time"
)

// Role is the privilege tier attached to a user. It gates mutating routes:
// PUT requires admin or dev, DELETE requires admin.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDev          Role = "dev"
	RoleSimpleMortal Role = "simple_mortal"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("incorrect credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("user doesn't have the privilege")

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDev, RoleSimpleMortal:
		return true
	}
	return false
}

// User models a stored account. HashedPass is always a digest, never the
// plaintext, and doubles as the bearer credential presented in the
// hashed_pass request header.
type User struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       Role       `json:"role"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	HashedPass string     `json:"hashed_pass"`
}
