// Package server contains the HTTP surface of the application: the Server
// struct, its middleware and routes, and the request handlers.
package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/featureflags"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	app            *fiber.App
	flags          *featureflags.Manager
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	followRepo     repository.FollowRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.ConnectWithRetry(context.Background(), cfg, 5)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server using an already-initialized database
// handle. Tests and bootstrap layers use this to inject their own storage.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	prom := middleware.InitMetrics("ripple-api")

	server := &Server{
		config:         cfg,
		db:             db,
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		followRepo:     repository.NewFollowRepository(db),
	}
	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for correlation
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request ID, user ID, trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Ripple Backend Metrics Dashboard",
	}))

	// Flag evaluation for the caller, anonymous or authenticated.
	api.Get("/flags", s.GetFeatureFlags)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Get("/profile", s.AuthRequired(), s.GetProfile)

	// Public post routes (browse/search); declared before /:post_id
	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Get("/search", s.SearchPosts)
	posts.Get("/feed", s.AuthRequired(), s.GetFeed)
	posts.Get("/my", s.AuthRequired(), s.GetMyPosts)
	posts.Get("/user/:userId", s.GetUserPosts)
	posts.Get("/:postId", s.GetPost)
	posts.Post("/", s.AuthRequired(), s.CreatePost)
	posts.Put("/:postId", s.AuthRequired(), s.UpdatePost)
	posts.Delete("/:postId", s.AuthRequired(), s.DeletePost)

	// User routes
	users := api.Group("/users")
	users.Post("/search", s.AuthRequired(), s.SearchUsers)
	users.Post("/follow", s.AuthRequired(), s.FollowUser)
	users.Delete("/unfollow", s.AuthRequired(), s.UnfollowUser)
	users.Get("/following", s.AuthRequired(), s.GetFollowing)
	users.Get("/followers", s.AuthRequired(), s.GetFollowers)
	users.Get("/stats", s.AuthRequired(), s.GetFollowStats)
	users.Put("/me", s.AuthRequired(), s.UpdateMyProfile)
	users.Get("/:id", s.GetUserProfile)

	// Like routes
	likes := api.Group("/likes")
	likes.Post("/", s.AuthRequired(), s.LikePost)
	likes.Get("/post/:postId", s.GetPostLikes)
	likes.Get("/user/:userId", s.GetUserLikes)
	likes.Delete("/:postId", s.AuthRequired(), s.UnlikePost)

	// Comment routes
	comments := api.Group("/comments")
	comments.Post("/", s.AuthRequired(), s.CreateComment)
	comments.Get("/post/:postId", s.GetPostComments)
	comments.Get("/user/:userId", s.GetUserComments)
	comments.Put("/:commentId", s.AuthRequired(), s.UpdateComment)
	comments.Delete("/:commentId", s.AuthRequired(), s.DeleteComment)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. Beyond signature and
// expiry checks, it loads the referenced user so tokens for deleted or never
// existing accounts fail closed.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c.Get("Authorization"))
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// A token can outlive its account; verify the user still exists.
		user, lookupErr := s.userRepo.GetByID(c.Context(), uint(userID))
		if lookupErr != nil || user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", uint(userID))
		c.Locals("username", user.Username)
		// Sync to UserContext for logging and downstream layers
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)
		observability.AddTraceAttributesToContext(ctx,
			attribute.String("enduser.id", sub))

		return c.Next()
	}
}

// extractToken accepts either a bare token or a "Bearer <token>" header value.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return header
}

// optionalUserID attempts to extract a user ID from the Authorization header
// but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := extractToken(c.Get("Authorization"))
	if tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Ripple API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			observability.RecordErrorInContext(c.UserContext(), err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
