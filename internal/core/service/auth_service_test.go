package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newAuthSvc(repo *stubUserRepo) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	user, err := svc.Register(context.Background(), "alice", "pass123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if stored := repo.users["alice"]; stored.PasswordHash == "pass123" {
		t.Fatalf("plaintext password reached the store")
	}
}

func TestAuthService_Register_DefaultsRoleToUser(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	user, err := svc.Register(context.Background(), "bob", "pass", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "", "pass", ""); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", ""); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass", "superuser"); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for bad role, got %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	// 40 two-byte runes: 80 bytes, over bcrypt's 72-byte input limit.
	_, err := svc.Register(context.Background(), "bob", strings.Repeat("é", 40), "")
	if !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("rejected registration must not store a user")
	}
	if _, err := svc.Register(context.Background(), "bob", strings.Repeat("a", 72), ""); err != nil {
		t.Fatalf("72-byte password must be accepted, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "bob", "pass", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass2", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("db unavailable")
	svc, _ := newAuthSvc(repo)

	_, err := svc.Register(context.Background(), "bob", "pass", "")
	if err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, tokens := newAuthSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "carol", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	identity, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if identity.Role != domain.RoleAdmin || identity.Username != "carol" {
		t.Fatalf("unexpected claims: %+v", identity)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "dave", "goodpass", "")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	denylist := newStubDenylist()
	tokens := NewTokenService("secret", time.Hour, WithDenylist(denylist))
	svc := NewAuthService(repo, tokens, zerolog.Nop())

	_, _ = svc.Register(context.Background(), "erin", "pass", "")
	token, _, err := svc.Login(context.Background(), "erin", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	identity, err := tokens.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify before logout: %v", err)
	}
	if err := svc.Logout(context.Background(), identity); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := tokens.Verify(context.Background(), token); err != domain.ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}
}
