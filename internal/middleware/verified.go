package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/repository"
)

// RequireVerified loads the authenticated user and refuses access
// unless the account is verified and not blocked. The JWT only
// carries subject and role, so verification and block state are read
// from the database on every request; an admin flipping either flag
// takes effect immediately, without waiting for token expiry.
func RequireVerified(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("user_id").(uint64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
			}
			if u.Blocked {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account blocked"})
			}
			if !u.Verified {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account not verified"})
			}
			return next(c)
		}
	}
}
