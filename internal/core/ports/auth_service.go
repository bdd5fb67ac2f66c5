package ports

import (
	"context"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// AuthService covers account registration and session handling.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, identity *domain.Identity) error
}
