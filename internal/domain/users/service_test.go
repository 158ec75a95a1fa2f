package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"adoption-platform/internal/platform/token"
	domainerrors "adoption-platform/pkg/domain-errors"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]User
	byEmail map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}, byEmail: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byEmail[strings.ToLower(u.Email)]; ok {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[strings.ToLower(u.Email)] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, token.NewService("test-secret", time.Hour))
}

func TestRegister_AlwaysRegularRole(t *testing.T) {
	svc := newTestService(newTestRepo())

	u, tok, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, u.Role)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if tok == "" {
		t.Fatal("expected session token")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestService(newTestRepo())

	cases := []RegisterInput{
		{Email: "a@example.com", Password: "secret123"},
		{Name: "Ana", Password: "secret123"},
		{Name: "Ana", Email: "a@example.com"},
	}
	for i, in := range cases {
		if _, _, err := svc.Register(context.Background(), in); !domainerrors.Is(err, domainerrors.CodeValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Otra Ana", Email: "ANA@example.com", Password: "secret123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errUnknown := svc.Login(context.Background(), "nadie@example.com", "secret123")
	_, _, errBadPass := svc.Login(context.Background(), "ana@example.com", "wrong-pass")

	if !domainerrors.Is(errUnknown, domainerrors.CodeInvalidCredentials) {
		t.Fatalf("unknown email: expected invalid credentials, got %v", errUnknown)
	}
	if !domainerrors.Is(errBadPass, domainerrors.CodeInvalidCredentials) {
		t.Fatalf("bad password: expected invalid credentials, got %v", errBadPass)
	}
	// mismo mensaje para no permitir enumerar usuarios
	if errUnknown.Error() != errBadPass.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", errUnknown, errBadPass)
	}
}

func TestLogin_OK(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, tok, err := svc.Login(context.Background(), "Ana@Example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Name != "Ana" || tok == "" {
		t.Fatalf("unexpected login result: user=%+v token=%q", u, tok)
	}
}

func TestResolveSession_UserDeleted(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	u, tok, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.ResolveSession(context.Background(), tok); err != nil {
		t.Fatalf("resolve before delete: %v", err)
	}

	delete(repo.byID, u.ID)
	if _, err := svc.ResolveSession(context.Background(), tok); !domainerrors.Is(err, domainerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized after user deleted, got %v", err)
	}
}
