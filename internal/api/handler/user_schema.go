package handler

import "time"

// --- Request / Response types ---

type createUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=admin dev simple_mortal"`
	// HashedPass carries the plaintext password on the wire; the service
	// digests it exactly once before persistence. The field name is kept for
	// compatibility with existing clients.
	HashedPass string     `json:"hashed_pass" validate:"required"`
	IsActive   *bool      `json:"is_active,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin dev simple_mortal"`
}

type loginRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	// HashedPass carries the plaintext password, same contract as create.
	HashedPass string `json:"hashed_pass" validate:"required"`
}

type loginResponse struct {
	HashPass string `json:"hash_pass"`
}
