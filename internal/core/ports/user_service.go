package ports

import (
	"context"
	"time"

	"github.com/usermgmt/user-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user. Password is the
// plaintext credential; the service digests it exactly once before storage.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Role      string
	Password  string
	IsActive  *bool
	LastLogin *time.Time
	CreatedAt *time.Time
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *string
}

// LoginInput carries the login triple. Password is plaintext.
type LoginInput struct {
	FirstName string
	LastName  string
	Password  string
}

// UserService defines the use-case operations exposed over HTTP.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	// Login returns the credential digest handed back to the client as its
	// bearer token.
	Login(ctx context.Context, input LoginInput) (string, error)
	Logout(ctx context.Context, credential string) error
}

// CredentialResolver is the slice of UserService the access-control
// middleware needs: mapping a bearer credential to a stored user.
type CredentialResolver interface {
	Identify(ctx context.Context, credential string) (*domain.User, error)
}
