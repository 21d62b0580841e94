package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-system/internal/core/domain"
	"github.com/usermgmt/user-system/internal/core/ports"
	"github.com/usermgmt/user-system/internal/pkg/hash"
)

// listLimit caps the number of users returned by ListUsers.
const listLimit = 1000

// UserService implements the user management use cases on top of the
// document-store port.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx, listLimit)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUser digests the plaintext password, fills creation defaults and
// inserts the document, then reads it back by the generated id.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	createdAt := time.Now().UTC()
	if input.CreatedAt != nil {
		createdAt = input.CreatedAt.UTC()
	}

	user := &domain.User{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Role:       role,
		IsActive:   input.IsActive != nil && *input.IsActive,
		LastLogin:  input.LastLogin,
		CreatedAt:  createdAt,
		HashedPass: hash.Digest(input.Password),
	}

	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert user")
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// UpdateUser applies only the fields present in input. An empty input is not
// an error: the stored document is returned unchanged. The id resolves to
// ErrUserNotFound only when no document carries it.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	fields := make(map[string]any)
	if input.FirstName != nil {
		fields["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		fields["last_name"] = *input.LastName
	}
	if input.Role != nil {
		role := domain.Role(*input.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		fields["role"] = string(role)
	}

	if len(fields) > 0 {
		if _, err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Int("fields", len(fields)).Msg("user updated")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Login digests the plaintext credential once and matches it against the
// stored triple. The first successful login flips the user active and stamps
// last_login; an already-active user is left untouched. The digest is
// returned to the client as its bearer token.
func (s *UserService) Login(ctx context.Context, input ports.LoginInput) (string, error) {
	digest := hash.Digest(input.Password)

	user, err := s.repo.FindByLogin(ctx, input.FirstName, input.LastName, digest)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !user.IsActive {
		now := time.Now().UTC()
		fields := map[string]any{
			"is_active":  true,
			"last_login": now,
		}
		if _, err := s.repo.Update(ctx, user.ID, fields); err != nil {
			return "", err
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return digest, nil
}

// Logout flips an active user to inactive. An unknown credential surfaces as
// ErrUserNotFound; logging out twice is a no-op.
func (s *UserService) Logout(ctx context.Context, credential string) error {
	user, err := s.repo.FindByCredential(ctx, credential)
	if err != nil {
		return err
	}

	if user.IsActive {
		if _, err := s.repo.Update(ctx, user.ID, map[string]any{"is_active": false}); err != nil {
			return err
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged out")
	return nil
}

// Identify resolves a bearer credential to its user, for the access-control
// middleware.
func (s *UserService) Identify(ctx context.Context, credential string) (*domain.User, error) {
	return s.repo.FindByCredential(ctx, credential)
}
