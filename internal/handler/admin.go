package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blood-donor-network/internal/middleware"
	"github.com/iliyamo/blood-donor-network/internal/repository"
	"github.com/iliyamo/blood-donor-network/internal/session"
)

// AdminHandler bundles dependencies for the login endpoints.
type AdminHandler struct {
	Admins   *repository.AdminRepo
	Sessions session.Manager
	Cookies  session.CookieCodec
}

func NewAdminHandler(a *repository.AdminRepo, s session.Manager, codec session.CookieCodec) *AdminHandler {
	return &AdminHandler{Admins: a, Sessions: s, Cookies: codec}
}

// Login checks the credentials against the admins table.  A failed attempt is
// still a 200 with success=false and leaves any current session alone; a
// successful one replaces it with a fresh admin session.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.FindByCredentials(ctx, req.Username, req.Password)
	if err != nil {
		c.Logger().Errorf("Login Error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	if admin == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": false})
	}

	if old := middleware.CurrentSession(c); old != nil {
		if err := h.Sessions.Destroy(ctx, old.ID); err != nil {
			c.Logger().Warnf("drop previous session: %v", err)
		}
	}
	s, err := h.Sessions.Create(ctx, true)
	if err != nil {
		c.Logger().Errorf("Login Error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Session error"})
	}
	ck, err := h.Cookies.Cookie(s)
	if err != nil {
		c.Logger().Errorf("Login Error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Session error"})
	}
	c.SetCookie(ck)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Logout ends the current session, if any, and always clears the cookie.
func (h *AdminHandler) Logout(c echo.Context) error {
	if s := middleware.CurrentSession(c); s != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Sessions.Destroy(ctx, s.ID); err != nil {
			c.Logger().Warnf("logout: %v", err)
		}
	}
	c.SetCookie(h.Cookies.Expired())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// CheckAuth reports whether the caller holds an admin session.
func (h *AdminHandler) CheckAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"authenticated": middleware.IsAdmin(c)})
}
