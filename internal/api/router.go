package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usermgmt/user-system/internal/api/handler"
	"github.com/usermgmt/user-system/internal/api/middleware"
	"github.com/usermgmt/user-system/internal/core/service"
	mongodb "github.com/usermgmt/user-system/internal/infrastructure/db/mongo"
	"github.com/usermgmt/user-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	userService := service.NewUserService(userRepo, log)
	userHandler := handler.NewUserHandler(userService)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("users"))
	// role gate for PUT/DELETE, runs before every handler
	e.Use(middleware.AccessControl(userService))

	// --- Auth routes ---
	e.POST("/login", userHandler.Login)
	e.GET("/logout", userHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- User CRUD ---
	e.GET("/", userHandler.List)
	e.POST("/", userHandler.Create)
	e.GET("/:id", userHandler.Get)
	e.PUT("/:id", userHandler.Update)
	e.DELETE("/:id", userHandler.Delete)

	return e
}
