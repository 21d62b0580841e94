package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-system/internal/core/domain"
	"github.com/usermgmt/user-system/internal/core/ports"
	"github.com/usermgmt/user-system/internal/pkg/hash"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.LastLogin != nil {
		ts := *u.LastLogin
		clone.LastLogin = &ts
	}
	return &clone
}

func (r *stubUserRepo) List(_ context.Context, limit int64) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByCredential(_ context.Context, hashedPass string) (*domain.User, error) {
	for _, u := range r.users {
		if u.HashedPass == hashedPass {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByLogin(_ context.Context, firstName, lastName, hashedPass string) (*domain.User, error) {
	for _, u := range r.users {
		if u.FirstName == firstName && u.LastName == lastName && u.HashedPass == hashedPass {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (string, error) {
	r.nextID++
	id := fmt.Sprintf("id-%d", r.nextID)
	stored := cloneUser(user)
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, fields map[string]any) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "first_name":
			u.FirstName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "role":
			u.Role = domain.Role(v.(string))
		case "is_active":
			u.IsActive = v.(bool)
		case "last_login":
			ts := v.(time.Time)
			u.LastLogin = &ts
		}
	}
	return 1, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func newTestService(repo ports.UserRepository) *UserService {
	return NewUserService(repo, zerolog.Nop())
}

func TestUserService_Create_DigestsPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John",
		LastName:  "Snow",
		Role:      "simple_mortal",
		Password:  "pw123",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.HashedPass == "pw123" {
		t.Fatalf("plaintext password was stored")
	}
	if user.HashedPass != hash.Digest("pw123") {
		t.Fatalf("stored pass %q is not the digest of the plaintext", user.HashedPass)
	}
	if user.IsActive {
		t.Fatalf("new user must start inactive")
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("created_at not stamped")
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John",
		LastName:  "Snow",
		Role:      "superuser",
		Password:  "pw123",
	})
	if err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update_PartialFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "simple_mortal", Password: "pw123",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first := "Aegon"
	updated, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.FirstName != "Aegon" {
		t.Fatalf("first_name not applied: %q", updated.FirstName)
	}
	if updated.LastName != "Snow" || updated.Role != domain.RoleSimpleMortal {
		t.Fatalf("absent fields were overwritten: %+v", updated)
	}
}

func TestUserService_Update_EmptyInputReturnsUnchanged(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "dev", Password: "pw123",
	})

	got, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{})
	if err != nil {
		t.Fatalf("empty update returned error: %v", err)
	}
	if got.FirstName != "John" || got.LastName != "Snow" || got.Role != domain.RoleDev {
		t.Fatalf("document changed by empty update: %+v", got)
	}
}

func TestUserService_Update_UnknownID(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, err := svc.UpdateUser(context.Background(), "missing", ports.UpdateUserInput{}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "dev", Password: "pw123",
	})

	bad := "root"
	if _, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{Role: &bad}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "admin", Password: "pw123",
	})

	if err := svc.DeleteUser(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetUser(context.Background(), created.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), created.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_Login_ActivatesAndStampsLastLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "simple_mortal", Password: "pw123",
	})
	if created.IsActive {
		t.Fatalf("precondition: user must start inactive")
	}

	token, err := svc.Login(context.Background(), ports.LoginInput{
		FirstName: "John", LastName: "Snow", Password: "pw123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != hash.Digest("pw123") {
		t.Fatalf("login returned %q, want the digest", token)
	}

	stored, _ := svc.GetUser(context.Background(), created.ID)
	if !stored.IsActive {
		t.Fatalf("login did not activate the user")
	}
	if stored.LastLogin == nil {
		t.Fatalf("login did not stamp last_login")
	}
	if stored.LastLogin.Before(stored.CreatedAt) {
		t.Fatalf("last_login %v precedes created_at %v", stored.LastLogin, stored.CreatedAt)
	}
}

func TestUserService_Login_SecondLoginKeepsLastLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "simple_mortal", Password: "pw123",
	})

	in := ports.LoginInput{FirstName: "John", LastName: "Snow", Password: "pw123"}
	if _, err := svc.Login(context.Background(), in); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	first, _ := svc.GetUser(context.Background(), created.ID)

	if _, err := svc.Login(context.Background(), in); err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	second, _ := svc.GetUser(context.Background(), created.ID)

	if !second.LastLogin.Equal(*first.LastLogin) {
		t.Fatalf("second login changed last_login: %v -> %v", first.LastLogin, second.LastLogin)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	_, _ = svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "simple_mortal", Password: "pw123",
	})

	if _, err := svc.Login(context.Background(), ports.LoginInput{
		FirstName: "John", LastName: "Snow", Password: "wrong",
	}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Logout(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{
		FirstName: "John", LastName: "Snow", Role: "simple_mortal", Password: "pw123",
	})
	token, _ := svc.Login(context.Background(), ports.LoginInput{
		FirstName: "John", LastName: "Snow", Password: "pw123",
	})

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	stored, _ := svc.GetUser(context.Background(), created.ID)
	if stored.IsActive {
		t.Fatalf("logout did not deactivate the user")
	}

	// second logout is a no-op, not an error
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("second logout returned error: %v", err)
	}
	stored, _ = svc.GetUser(context.Background(), created.ID)
	if stored.IsActive {
		t.Fatalf("user active again after second logout")
	}
}

func TestUserService_Logout_UnknownCredential(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if err := svc.Logout(context.Background(), "deadbeef"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
