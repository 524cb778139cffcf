// Package handler contains the HTTP handlers behind the /v1 API.
// Handlers bind and validate request DTOs, call repositories and
// services, and translate sentinel errors into status codes. Every
// error body has the shape {"error": "..."}.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/repository"
	"github.com/iliyamo/school-community-platform/internal/utils"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUserID reads the authenticated user id stored by the JWT
// middleware. Routes calling this are always behind JWTAuth, so a
// missing value is a programming error and maps to zero.
func currentUserID(c echo.Context) uint64 {
	uid, _ := c.Get("user_id").(uint64)
	return uid
}

func currentRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// pathID parses the named numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// bindAndValidate binds the JSON body into req and runs tag
// validation. On failure it writes the 400 response and returns
// false; the handler just returns nil.
func bindAndValidate(c echo.Context, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": utils.FieldErrors(err),
		})
		return false
	}
	return true
}

// writeRepoErr maps the shared sentinel errors to status codes and
// anything unrecognized to a generic 500 with msg.
func writeRepoErr(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
}
