package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns the auth gate for privileged routes.  It only looks at
// the admin flag of the session loaded by LoadSession; credentials are never
// re-checked per request.  Requests without an admin session are answered
// with 401 and never reach the handler.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAdmin(c) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}
