package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/blood-donor-network/internal/config"
	"github.com/iliyamo/blood-donor-network/internal/database"
	"github.com/iliyamo/blood-donor-network/internal/handler"
	"github.com/iliyamo/blood-donor-network/internal/repository"
	"github.com/iliyamo/blood-donor-network/internal/service"
	"github.com/iliyamo/blood-donor-network/internal/session"
)

// Deps carries everything the HTTP layer needs.  Redis and Events are
// optional: a nil Redis disables the listing cache and a nil Events drops
// donor events.
type Deps struct {
	DB      *sql.DB
	Dialect database.Dialect

	Sessions session.Manager
	Cookies  session.CookieCodec

	Events service.EventPublisher
	Redis  *redis.Client
	Cache  config.CacheConfig

	CORSOrigins []string
	StaticDir   string
}

// New builds a fully routed Echo instance.
func New(d Deps) *echo.Echo {
	e := echo.New()     // Create Echo instance
	e.HideBanner = true // startup is logged by the caller

	UseGlobal(e, d.CORSOrigins, d.Sessions, d.Cookies) // middleware shared by every route
	RegisterRoutes(e, d.StaticDir)                     // health check and static files

	// Login endpoints read the admins table and issue session cookies.
	admins := repository.NewAdminRepo(d.DB, d.Dialect)
	RegisterAdmin(e, handler.NewAdminHandler(admins, d.Sessions, d.Cookies))

	// Donor registry backed by blood_donors, cached in Redis when available.
	donors := repository.NewDonorRepo(d.DB, d.Dialect)
	RegisterDonors(e, handler.NewDonorHandler(donors, d.Events), d.Cache, d.Redis)

	return e
}
