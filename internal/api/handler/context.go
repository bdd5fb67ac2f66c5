package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sourav-hati/bookstore/internal/api/middleware"
	"github.com/sourav-hati/bookstore/internal/core/domain"
)

// ctxIdentity returns the identity stored by the Auth middleware. Its absence
// means the route was mounted without the gate.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if identity == nil || identity.Username == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrMissingToken.Error()).
			SetInternal(domain.ErrMissingToken)
	}
	return identity, nil
}
