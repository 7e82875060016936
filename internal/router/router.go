package router // package router defines how HTTP routes are registered for the API

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/blood-donor-network/internal/handler"
	"github.com/iliyamo/blood-donor-network/internal/middleware"
	"github.com/iliyamo/blood-donor-network/internal/session"
)

// UseGlobal installs the middleware every request passes through: panic
// recovery, access logging, CORS and the session loader that RequireAdmin
// and the admin handlers depend on.
func UseGlobal(e *echo.Echo, corsOrigins []string, mgr session.Manager, codec session.CookieCodec) {
	// Turn panics into 500 responses instead of killing the process.
	e.Use(echomw.Recover())
	// One access log line per request; HandleError lets echo write the error response first.
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s %d %s err=%v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	// CORS_ORIGINS="*" (the default) allows any origin without credentials.
	wildcard := len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*")
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		// credentials cannot be combined with a wildcard origin
		AllowCredentials: !wildcard,
	}))

	// Resolve the session cookie last so every handler sees the session.
	e.Use(middleware.LoadSession(mgr, codec))
}

// RegisterRoutes registers the unauthenticated infrastructure routes: the
// health check and, when staticDir exists, the static front end.
func RegisterRoutes(e *echo.Echo, staticDir string) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Serve the front end only when its directory is present; API routes
	// registered elsewhere still take precedence over the static wildcard.
	if staticDir == "" {
		return
	}
	if fi, err := os.Stat(staticDir); err == nil && fi.IsDir() {
		e.Static("/", staticDir)
	}
}
