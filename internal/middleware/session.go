package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blood-donor-network/internal/session"
)

// LoadSession returns an Echo middleware that resolves the session cookie,
// if any, and stores the live session in the context under "session".  A
// missing, forged or expired cookie simply leaves the request anonymous; it
// never fails the request.  Handlers and RequireAdmin read the result via
// CurrentSession.
func LoadSession(mgr session.Manager, codec session.CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(codec.Name)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			sid, err := codec.Decode(ck.Value)
			if err != nil {
				return next(c)
			}
			s, err := mgr.Get(c.Request().Context(), sid)
			if err != nil {
				c.Logger().Warnf("session lookup failed: %v", err)
				return next(c)
			}
			if s != nil {
				c.Set(sessionKey, s)
			}
			return next(c)
		}
	}
}
