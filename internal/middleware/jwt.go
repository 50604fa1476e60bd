package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/document-manager/internal/utils"
)

// claimsKey is the context key under which JWTAuth stores the verified
// token claims for downstream handlers.
const claimsKey = "claims"

// JWTAuth returns an Echo middleware that validates a Bearer identity
// token and injects the verified claims into the request context. The
// provided secret must match the one used when issuing tokens. Handlers
// behind this middleware read the caller's identity via ClaimsFrom.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer " followed by the token. Anything
			// else short-circuits with 401 before the handler runs.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			cl, err := utils.VerifyToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			c.Set(claimsKey, cl)
			// The rate limiter keys buckets by user when available.
			c.Set("user_id", strconv.FormatUint(cl.UserID, 10))
			return next(c)
		}
	}
}

// ClaimsFrom retrieves the claims stored by JWTAuth. The boolean is
// false when the request did not pass through the auth middleware.
func ClaimsFrom(c echo.Context) (utils.Claims, bool) {
	cl, ok := c.Get(claimsKey).(utils.Claims)
	return cl, ok
}
