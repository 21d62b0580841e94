package ports

import (
	"context"

	"github.com/usermgmt/user-system/internal/core/domain"
)

// UserRepository is the narrow document-store port the core depends on.
// Any store offering find/insert/update/delete over user documents can
// implement it.
type UserRepository interface {
	// List returns up to limit users.
	List(ctx context.Context, limit int64) ([]*domain.User, error)
	// FindByID returns the user with the given opaque id, or ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByCredential returns the user whose stored digest equals hashedPass.
	FindByCredential(ctx context.Context, hashedPass string) (*domain.User, error)
	// FindByLogin returns the user matching the login triple.
	FindByLogin(ctx context.Context, firstName, lastName, hashedPass string) (*domain.User, error)
	// Insert stores a new user and returns its generated id.
	Insert(ctx context.Context, user *domain.User) (string, error)
	// Update applies the given fields to the user document and returns the
	// number of documents matched.
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	// Delete removes the user document and returns the number deleted.
	Delete(ctx context.Context, id string) (int64, error)
}
