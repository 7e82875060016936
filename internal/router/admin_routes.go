package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blood-donor-network/internal/handler"
)

// RegisterAdmin registers the login endpoints.  None of them require a
// session; /api/login is the path the bundled front end posts to.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler) {
	// Exchange admin credentials for a session cookie.
	e.POST("/admin/login", a.Login)
	// Same handler under the path the bundled front end posts to.
	e.POST("/api/login", a.Login)
	// Destroy the session and expire the cookie; safe to call without one.
	e.POST("/api/logout", a.Logout)
	// Report whether the caller's cookie carries an admin session.
	e.GET("/api/check-auth", a.CheckAuth)
}
