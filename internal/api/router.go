package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/leadflow/lead-distribution/docs"
	"github.com/leadflow/lead-distribution/internal/api/handler"
	"github.com/leadflow/lead-distribution/internal/api/middleware"
	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/service"
	mongodb "github.com/leadflow/lead-distribution/internal/infrastructure/db/mongo"
	redisdb "github.com/leadflow/lead-distribution/internal/infrastructure/db/redis"
	"github.com/leadflow/lead-distribution/internal/pkg/config"
)

const tokenTTL = 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("leadflow"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	leadRepo := mongodb.NewLeadRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, tokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	ingestService := service.NewIngestService(userRepo, leadRepo, log)
	leadService := service.NewLeadService(userRepo, leadRepo, log)
	statsService := service.NewStatsService(userRepo, leadRepo)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, leadService, ingestService, statsService, cfg.UploadDir)
	agentHandler := handler.NewAgentHandler(leadService)
	superHandler := handler.NewSuperAdminHandler(userService, statsService)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/signup", authHandler.Signup)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMW, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/agents", adminHandler.ListAgents)
	// Some dashboard clients fetch the agent list with a POST.
	admin.POST("/agents", adminHandler.ListAgents)
	admin.POST("/newagent", adminHandler.CreateAgent)
	admin.PUT("/agents/:id", adminHandler.UpdateAgent)
	admin.DELETE("/agents/:id", adminHandler.DeleteAgent)
	admin.POST("/upload", adminHandler.Upload)
	admin.GET("/uploads", adminHandler.ListUploads)
	admin.GET("/uploads/agent/:id", adminHandler.ListAgentUploads)
	admin.PUT("/uploads/:id/status", adminHandler.UpdateLeadStatus)
	admin.DELETE("/uploads/:id", adminHandler.DeleteUpload)
	admin.GET("/stats", adminHandler.Stats)

	// --- Agent routes ---
	agents := e.Group("/api/agents", authMW, middleware.RBAC(domain.RoleAgent))
	agents.GET("/dashboard", agentHandler.Dashboard)
	agents.PATCH("/lead/:id/status", agentHandler.UpdateLeadStatus)

	// --- Superadmin routes ---
	super := e.Group("/api/superadmin", authMW, middleware.RBAC(domain.RoleSuperAdmin))
	super.POST("/newadmin", superHandler.CreateAdmin)
	super.GET("/dashboard-stats", superHandler.DashboardStats)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
