package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/handler"
	"github.com/SambridhiGhimire/Architech-bidding/internal/api/middleware"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Auth     ports.AuthService
	Projects ports.ProjectService
	Bids     ports.BidService
	Messages ports.MessageService
	Ratings  ports.RatingService
	Activity ports.ActivityService
	Files    ports.FileStore

	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	UploadDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bidding"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	projectHandler := handler.NewProjectHandler(deps.Projects, deps.Files)
	bidHandler := handler.NewBidHandler(deps.Bids, deps.Files)
	messageHandler := handler.NewMessageHandler(deps.Messages, deps.Files)
	ratingHandler := handler.NewRatingHandler(deps.Ratings)
	activityHandler := handler.NewActivityHandler(deps.Projects, deps.Activity)
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis)

	authMW := middleware.Auth(deps.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleProjectOwner, domain.RoleServiceProvider, domain.RoleAdmin)
	ownerOnly := middleware.RBAC(domain.RoleProjectOwner, domain.RoleAdmin)
	providerOnly := middleware.RBAC(domain.RoleServiceProvider)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Stored uploads ---
	if deps.UploadDir != "" {
		e.Static("/uploads", deps.UploadDir)
	}

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMW, anyRole)
	auth.PUT("/profile", authHandler.UpdateProfile, authMW, anyRole)

	// --- Users ---
	users := e.Group("/api/users", authMW, anyRole)
	users.GET("/:id", authHandler.GetUser)
	users.GET("/:id/ratings", ratingHandler.UserSummary)

	// --- Projects ---
	projects := e.Group("/api/projects", authMW)
	projects.GET("", projectHandler.List, anyRole)
	projects.GET("/:id", projectHandler.Get, anyRole)
	projects.POST("", projectHandler.Create, ownerOnly)
	projects.PUT("/:id", projectHandler.Update, ownerOnly)
	projects.DELETE("/:id", projectHandler.Delete, ownerOnly)
	projects.POST("/:id/publish", projectHandler.Publish, ownerOnly)
	projects.GET("/:id/activity", activityHandler.ProjectFeed, anyRole)

	// --- Bids ---
	projects.POST("/:id/bids", bidHandler.Submit, providerOnly)
	projects.GET("/:id/bids", bidHandler.ListForProject, ownerOnly)
	projects.POST("/:id/bids/:bidId/accept", bidHandler.Accept, ownerOnly)
	projects.POST("/:id/bids/:bidId/reject", bidHandler.Reject, ownerOnly)

	bids := e.Group("/api/bids", authMW, providerOnly)
	bids.GET("/mine", bidHandler.ListMine)
	bids.PUT("/:id", bidHandler.Update)
	bids.DELETE("/:id", bidHandler.Withdraw)

	// --- Messaging ---
	messages := e.Group("/api/messages", authMW, anyRole)
	messages.POST("", messageHandler.Send)
	messages.GET("/conversations", messageHandler.ListConversations)
	messages.GET("/conversations/:id", messageHandler.GetConversation)
	messages.PUT("/:id/read", messageHandler.MarkRead)
	messages.GET("/unread-count", messageHandler.UnreadCount)
	messages.DELETE("/:id", messageHandler.Delete)

	// --- Ratings ---
	ratings := e.Group("/api/ratings", authMW, anyRole)
	ratings.POST("", ratingHandler.Submit)
	ratings.GET("/mine", ratingHandler.ListMine)
	ratings.PUT("/:id", ratingHandler.Update)
	ratings.DELETE("/:id", ratingHandler.Delete)
	ratings.POST("/:id/report", ratingHandler.Report)

	projects.GET("/:id/ratings", ratingHandler.ListForProject, anyRole)

	return e
}
