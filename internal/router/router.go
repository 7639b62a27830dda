// Package router defines how HTTP routes are registered for the API.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/config"
	"stockroom/internal/handler"
	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/repository"
)

// Deps carries everything Register needs to wire the routes.
type Deps struct {
	Log           *logger.Logger
	Users         *repository.UserRepo
	Auth          *handler.AuthHandler
	Manufacturers *handler.ManufacturerHandler
	Items         *handler.ItemHandler
	RDB           *redis.Client
	Cache         config.CacheConfig
	RateLimit     config.RateLimitConfig
	TokenTTL      time.Duration
}

// Register wires all routes and their middleware onto the Echo instance.
// Login is rate limited but unauthenticated; everything else under /api sits
// behind the bearer-token gate. The two list endpoints get the response
// cache. Unsupported methods on known paths answer 405 with an Allow header
// straight from the Echo router.
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.RequestID(d.Log))

	e.GET("/healthz", handler.Health)

	e.POST("/api/auth/login", d.Auth.Login, middleware.RateLimit(d.RateLimit, d.RDB))

	api := e.Group("/api", middleware.BearerAuth(d.Users, d.TokenTTL))

	cache := middleware.ResponseCache(d.Cache, d.RDB)
	api.GET("/manufacturers", d.Manufacturers.List, cache)
	api.POST("/manufacturers", d.Manufacturers.Create)
	api.PUT("/manufacturers/:id", d.Manufacturers.Update)
	api.DELETE("/manufacturers/:id", d.Manufacturers.Delete)

	api.GET("/items", d.Items.List, cache)
	api.POST("/items", d.Items.Create)
	api.PUT("/items/:id", d.Items.Update)
	api.DELETE("/items/:id", d.Items.Delete)
}
