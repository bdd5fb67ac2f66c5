package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.Denylist
	now      func() time.Time
	log      zerolog.Logger
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithDenylist enables revocation checks against the given store.
func WithDenylist(d ports.Denylist) TokenOption {
	return func(s *TokenService) { s.denylist = d }
}

// WithClock replaces the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// WithLogger sets the logger used for denylist failures.
func WithLogger(log zerolog.Logger) TokenOption {
	return func(s *TokenService) { s.log = log }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for the given username and role.
func (s *TokenService) Issue(username, role string) (string, *domain.Identity, error) {
	now := s.now().UTC().Truncate(time.Second)
	claims := sessionClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.identity(), nil
}

// Parse validates signature and expiry without any I/O.
func (s *TokenService) Parse(token string) (*domain.Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims sessionClaims
	tkn, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims.identity(), nil
}

// Verify parses the token and rejects it when its id has been revoked.
// Denylist outages are logged and do not reject otherwise valid tokens.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := s.Parse(token)
	if err != nil {
		return nil, err
	}
	if s.denylist == nil || identity.TokenID == "" {
		return identity, nil
	}

	revoked, err := s.denylist.Contains(ctx, identity.TokenID)
	if err != nil {
		s.log.Warn().Err(err).Str("jti", identity.TokenID).Msg("denylist lookup failed, accepting token")
		return identity, nil
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return identity, nil
}

// Revoke denylists the token until its expiry. It is a no-op without a
// configured denylist.
func (s *TokenService) Revoke(ctx context.Context, identity *domain.Identity) error {
	if s.denylist == nil || identity == nil || identity.TokenID == "" {
		return nil
	}
	if !identity.ExpiresAt.After(s.now()) {
		return nil
	}
	if err := s.denylist.Add(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (c *sessionClaims) identity() *domain.Identity {
	id := &domain.Identity{
		Username: c.Username,
		Role:     c.Role,
		TokenID:  c.ID,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.UTC()
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.UTC()
	}
	return id
}
