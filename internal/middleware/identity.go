package middleware

// identity.go holds the context accessors shared by the session loader, the
// auth gate and the handlers.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blood-donor-network/internal/session"
)

const sessionKey = "session"

// CurrentSession returns the session LoadSession attached to c, or nil for an
// anonymous request.
func CurrentSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(c echo.Context) bool {
	s := CurrentSession(c)
	return s != nil && s.Admin
}
