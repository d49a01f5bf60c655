package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hajobjah/marketplace/internal/api/handler"
	"github.com/hajobjah/marketplace/internal/api/middleware"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// Dependencies collects everything the router mounts.
type Dependencies struct {
	Store     *store.Store
	Auth      ports.AuthService
	Profile   ports.ProfileService
	Jobs      ports.JobService
	Helpers   ports.HelperService
	Board     ports.BoardService
	Admin     ports.AdminService
	Binder    handler.ActorBinder
	Pingers   map[string]handler.Pinger
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Binder)
	profileHandler := handler.NewProfileHandler(deps.Profile)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	helperHandler := handler.NewHelperHandler(deps.Helpers)
	boardHandler := handler.NewBoardHandler(deps.Board)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	listingHandler := handler.NewListingHandler(deps.Store)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Store, deps.Pingers)

	authMW := middleware.Auth(deps.JWTSecret)
	staffMW := middleware.RBAC(string(domain.RoleAdmin))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Public read side ---
	e.GET("/v1/jobs", listingHandler.ListJobs)
	e.GET("/v1/helpers", listingHandler.ListHelpers)
	e.GET("/v1/board/posts", listingHandler.ListBoardPosts)
	e.GET("/v1/board/posts/:id", listingHandler.GetBoardPost)
	e.GET("/v1/users/:id", listingHandler.GetUser)
	e.GET("/v1/site/status", listingHandler.SiteStatus)

	// --- Authenticated write side ---
	v1 := e.Group("/v1", authMW)
	v1.PUT("/profile", profileHandler.Update)
	v1.PUT("/profile/photo", profileHandler.ReplacePhoto)

	v1.POST("/jobs", jobHandler.Create)
	v1.PUT("/jobs/:id", jobHandler.Update)
	v1.DELETE("/jobs/:id", jobHandler.Delete)

	v1.POST("/helpers", helperHandler.Create)
	v1.PUT("/helpers/:id", helperHandler.Update)
	v1.DELETE("/helpers/:id", helperHandler.Delete)
	v1.POST("/helpers/:id/interest", helperHandler.RegisterInterest)

	v1.POST("/board/posts", boardHandler.CreatePost)
	v1.PUT("/board/posts/:id", boardHandler.UpdatePost)
	v1.DELETE("/board/posts/:id", boardHandler.DeletePost)
	v1.POST("/board/posts/:id/like", boardHandler.ToggleLike)
	v1.POST("/board/posts/:id/comments", boardHandler.CreateComment)
	v1.PUT("/board/comments/:id", boardHandler.UpdateComment)
	v1.DELETE("/board/comments/:id", boardHandler.DeleteComment)

	// --- Admin routes (role check on top of auth; services re-verify) ---
	admin := e.Group("/v1/admin", authMW, staffMW)
	admin.PATCH("/jobs/:id/flags", adminHandler.SetJobFlag)
	admin.PATCH("/helpers/:id/flags", adminHandler.SetHelperFlag)
	admin.PATCH("/board/posts/:id/pin", adminHandler.PinBoardPost)
	admin.PATCH("/users/:id/role", adminHandler.SetUserRole)
	admin.PATCH("/users/:id/mute", adminHandler.SetUserMuted)
	admin.PATCH("/users/:id/freeze", adminHandler.SetUserFrozen)
	admin.PATCH("/site/lock", adminHandler.SetSiteLocked)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – backend up, snapshots applied?

	return e
}
