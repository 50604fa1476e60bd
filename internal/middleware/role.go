package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/model"
)

// RequireAdmin returns a middleware that enforces the admin role on a
// route. It assumes JWTAuth already ran and stored the claims in the
// context; a request whose role id is not the admin sentinel is aborted
// with 403 Forbidden.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cl, ok := ClaimsFrom(c)
			if !ok || cl.RoleID != model.AdminRoleID {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
