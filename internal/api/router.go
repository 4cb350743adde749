package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatura/catalog-api/internal/api/handler"
	"github.com/mercatura/catalog-api/internal/api/middleware"
	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/service"
	"github.com/mercatura/catalog-api/internal/infrastructure/config"
	mongodb "github.com/mercatura/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercatura/catalog-api/internal/infrastructure/db/redis"
	"github.com/mercatura/catalog-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	listCache := redisdb.NewListCache(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, log)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, listCache, log)
	productService := service.NewProductService(productRepo, categoryRepo, listCache, log)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)

	// Context population runs on every request; it never rejects by itself.
	e.Use(middleware.Auth(tokenService, userRepo))

	// Per-endpoint policy: reads need any authenticated role, writes need
	// SUPER_ADMIN.
	requireAuth := middleware.RequireAuthenticated()
	requireSuper := middleware.RequireRoles(domain.RoleSuperAdmin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Categories ---
	categories := e.Group("/categories")
	categories.GET("", categoryHandler.List, requireAuth)
	categories.GET("/:id", categoryHandler.Get, requireAuth)
	categories.POST("", categoryHandler.Create, requireSuper)
	categories.PUT("/:id", categoryHandler.Update, requireSuper)
	categories.PATCH("/:id", categoryHandler.Patch, requireSuper)
	categories.DELETE("/:id", categoryHandler.Delete, requireSuper)
	categories.DELETE("", categoryHandler.DeleteAll, requireSuper)

	// --- Products ---
	products := e.Group("/products")
	products.GET("", productHandler.List, requireAuth)
	products.GET("/:id", productHandler.Get, requireAuth)
	products.POST("", productHandler.Create, requireSuper)
	products.PUT("/:id", productHandler.Update, requireSuper)
	products.PATCH("/:id", productHandler.Patch, requireSuper)
	products.PATCH("/:id/stock", productHandler.UpdateStock, requireSuper)
	products.DELETE("/:id", productHandler.Delete, requireSuper)

	// --- Operational surface (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
