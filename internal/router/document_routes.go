package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/handler"
)

// RegisterDocuments registers the document endpoints under /api. Every
// route requires a valid token; ownership rules live in the handlers.
// extra (limiter, cache) runs after JWTAuth.
func RegisterDocuments(e *echo.Echo, d *handler.DocumentHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/api", withAuth(jwtSecret, extra)...)
	g.POST("/documents", d.CreateDocument)
	g.GET("/documents", d.ListDocuments)
	g.GET("/documents/:id", d.FindDocument)
	g.PUT("/documents/:id", d.UpdateDocument)
	g.DELETE("/documents/:id", d.DeleteDocument)
	g.GET("/search/documents", d.SearchDocuments)
}
