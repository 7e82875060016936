package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/blood-donor-network/internal/config"
	"github.com/iliyamo/blood-donor-network/internal/handler"
	"github.com/iliyamo/blood-donor-network/internal/middleware"
)

// RegisterDonors registers the donor registry under /api/blood-donors.
// Listing and registration are public; deletion requires an admin session.
// The listing is served through the Redis cache and both writes flush it.
// rdb may be nil, in which case caching is skipped.
func RegisterDonors(e *echo.Echo, h *handler.DonorHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	// All donor routes share the /api/blood-donors prefix.
	g := e.Group("/api/blood-donors")
	// Writes bump the cache generation once they succeed.
	invalidate := middleware.InvalidateCache(cacheCfg, rdb)

	// List donors, optionally filtered by ?blood_group= and ?location=.
	g.GET("", h.List, middleware.NewRedisCache(cacheCfg, rdb))
	// Register a donor from a JSON or form body; no login required.
	g.POST("", h.Create, invalidate)
	// Delete a donor by id.  RequireAdmin runs first so a rejected request
	// never touches the cache.
	g.DELETE("/:id", h.Delete, middleware.RequireAdmin(), invalidate)
}
