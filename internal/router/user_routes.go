package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/handler"
	"github.com/iliyamo/document-manager/internal/middleware"
)

// RegisterUsers registers the user and auth endpoints under /api.
// Login, logout and registration are open; everything else requires a
// valid token, and the full user listing additionally requires admin.
//
// extra carries the rate limiter and response cache. On protected
// groups they run after JWTAuth and RequireAdmin, so their keys see the
// verified caller and a cache hit can never stand in for a credential
// check.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	open := e.Group("/api", extra...)
	open.POST("/users/login", a.Login)
	open.POST("/users/logout", a.Logout)
	open.POST("/users", a.Register)

	auth := e.Group("/api", withAuth(jwtSecret, extra)...)
	auth.GET("/users/:id", u.FindUser)
	auth.PUT("/users/:id", u.UpdateUser)
	auth.DELETE("/users/:id", u.DeleteUser)
	auth.GET("/search/users", u.SearchUsers)
	auth.GET("/users/:id/documents", u.UserDocuments)

	admin := e.Group("/api", withAdmin(jwtSecret, extra)...)
	admin.GET("/users", u.ListUsers)
}

// withAuth prefixes extra middleware with the JWT check.
func withAuth(jwtSecret string, extra []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append([]echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret)}, extra...)
}

// withAdmin prefixes extra middleware with the JWT and admin checks.
func withAdmin(jwtSecret string, extra []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(),
	}, extra...)
}
