package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
	"github.com/sourav-hati/bookstore/internal/pkg/metrics"
)

// Context keys set by Auth.
const (
	IdentityKey = "identity"
	UsernameKey = "username"
	RoleKey     = "role"
)

// Auth resolves the bearer token into an identity and stores it on the
// context. A missing token is a 401; a token that is present but unusable is
// a 403.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return deny("missing_token", http.StatusUnauthorized, domain.ErrMissingToken)
			}

			identity, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					return deny("expired", http.StatusForbidden, domain.ErrTokenExpired)
				case errors.Is(err, domain.ErrTokenRevoked):
					return deny("revoked", http.StatusForbidden, domain.ErrTokenRevoked)
				default:
					return deny("invalid_token", http.StatusForbidden, domain.ErrInvalidToken)
				}
			}

			c.Set(IdentityKey, identity)
			c.Set(UsernameKey, identity.Username)
			c.Set(RoleKey, identity.Role)
			metrics.AuthGateDecisionsTotal.WithLabelValues("authorized").Inc()

			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is matched
// case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func deny(outcome string, code int, sentinel error) error {
	metrics.AuthGateDecisionsTotal.WithLabelValues(outcome).Inc()
	return echo.NewHTTPError(code, sentinel.Error()).SetInternal(sentinel)
}
