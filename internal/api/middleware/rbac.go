package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// RequireRole enforces role-based access control. It must run after Auth.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				return deny("forbidden", http.StatusForbidden, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
