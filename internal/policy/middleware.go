package policy

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velmart/storefront/internal/token"
)

// Middleware guards every route: allowlisted routes pass through, anything
// else needs a valid bearer token, and the engine then checks the admin
// claim. Verified claims land in the echo context under "userID" and
// "isAdmin".
func Middleware(engine *Engine, tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if engine.Public(req.Method, req.URL.Path) {
				return next(c)
			}

			auth := req.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}

			if engine.Decide(req.Method, req.URL.Path, claims.IsAdmin) == Forbid {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}

			c.Set("userID", claims.UserID)
			c.Set("isAdmin", claims.IsAdmin)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's id set by Middleware.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}
