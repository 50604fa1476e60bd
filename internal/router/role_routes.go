package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/handler"
)

// RegisterRoles registers the role endpoints under /api. Reading roles
// requires only authentication; mutations are admin-only. extra
// (limiter, cache) runs after the auth checks.
func RegisterRoles(e *echo.Echo, r *handler.RoleHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/api", withAuth(jwtSecret, extra)...)
	g.GET("/roles", r.ListRoles)
	g.GET("/roles/:id", r.FindRole)

	admin := e.Group("/api", withAdmin(jwtSecret, extra)...)
	admin.POST("/roles", r.CreateRole)
	admin.PUT("/roles/:id", r.UpdateRole)
	admin.DELETE("/roles/:id", r.DeleteRole)
}
