// Package handler contains the HTTP controllers. Each controller owns
// its failure mapping: errors from the repositories are converted to a
// JSON response right here and never propagate past the request.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Listing endpoints default to the first ten records.
const (
	defaultLimit  = 10
	defaultOffset = 0
)

// reqCtx bounds a handler's database calls to five seconds.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pageParams reads limit/offset query parameters. The override only
// applies when both are supplied and valid; a partial or malformed pair
// silently falls back to the defaults rather than honoring half of it.
func pageParams(c echo.Context) (limit, offset int) {
	limit, offset = defaultLimit, defaultOffset
	ls, os := c.QueryParam("limit"), c.QueryParam("offset")
	if ls == "" || os == "" {
		return limit, offset
	}
	l, lerr := strconv.Atoi(ls)
	o, oerr := strconv.Atoi(os)
	if lerr != nil || oerr != nil || l <= 0 || o < 0 {
		return defaultLimit, defaultOffset
	}
	return l, o
}

// parseID parses the :id route parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
