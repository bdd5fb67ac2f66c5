package ports

import (
	"context"
	"time"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(username, role string) (string, *domain.Identity, error)
}

// TokenVerifier resolves a bearer token into the identity it carries.
// Implementations fail with domain.ErrInvalidToken, domain.ErrTokenExpired
// or domain.ErrTokenRevoked.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenRevoker invalidates a token before its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, identity *domain.Identity) error
}

// Denylist stores revoked token ids until they would have expired anyway.
type Denylist interface {
	Add(ctx context.Context, tokenID string, until time.Time) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}
