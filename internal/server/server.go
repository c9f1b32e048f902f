// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"tinfoil/internal/cache"
	"tinfoil/internal/config"
	"tinfoil/internal/database"
	"tinfoil/internal/generator"
	"tinfoil/internal/middleware"
	"tinfoil/internal/models"
	"tinfoil/internal/repository"
	"tinfoil/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo      repository.UserRepository
	adminRepo     repository.AdminRepository
	theoryRepo    repository.TheoryRepository
	tagRepo       repository.TagRepository
	commentRepo   repository.CommentRepository
	likeRepo      repository.LikeRepository
	shareRepo     repository.ShareRepository
	reportRepo    repository.ReportRepository
	activityRepo  repository.ActivityLogRepository
	generatedRepo repository.GeneratedTheoryRepository

	userService        *service.UserService
	adminService       *service.AdminService
	theoryService      *service.TheoryService
	commentService     *service.CommentService
	interactionService *service.InteractionService
	reportService      *service.ReportService
	generatorService   *service.GeneratorService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("tinfoil-api"),

		userRepo:      repository.NewUserRepository(db),
		adminRepo:     repository.NewAdminRepository(db),
		theoryRepo:    repository.NewTheoryRepository(db),
		tagRepo:       repository.NewTagRepository(db),
		commentRepo:   repository.NewCommentRepository(db),
		likeRepo:      repository.NewLikeRepository(db),
		shareRepo:     repository.NewShareRepository(db),
		reportRepo:    repository.NewReportRepository(db),
		activityRepo:  repository.NewActivityLogRepository(db),
		generatedRepo: repository.NewGeneratedTheoryRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, server.activityRepo)
	server.adminService = service.NewAdminService(server.adminRepo, server.activityRepo)
	server.theoryService = service.NewTheoryService(server.theoryRepo, server.tagRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.theoryRepo)
	server.interactionService = service.NewInteractionService(server.likeRepo, server.shareRepo, server.theoryRepo)
	server.reportService = service.NewReportService(server.reportRepo, server.theoryRepo)
	server.generatorService = service.NewGeneratorService(generator.New(), server.generatedRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Tinfoil Backend Metrics Dashboard",
	}))

	// Admin routes come first: /by-user paths must win over the generic
	// /:id routes, and per-route middleware keeps the admin token check off
	// everything else.
	adminOnly := s.AdminRequired()
	api.Get("/users", adminOnly, s.AdminListUsers)
	api.Get("/admins/profile", adminOnly, s.AdminProfile)
	api.Get("/admins", adminOnly, s.AdminListAdmins)
	api.Post("/admins", adminOnly, s.AdminCreateAdmin)
	api.Delete("/admins/:id", adminOnly, s.AdminDeleteAdmin)
	api.Post("/tags", adminOnly, s.AdminCreateTag)
	api.Delete("/tags/:id", adminOnly, s.AdminDeleteTag)
	api.Get("/generated/by-user/:userId", adminOnly, s.AdminGetUserGenerated)
	api.Get("/generated", adminOnly, s.AdminListGenerated)
	api.Get("/reports/by-user/:userId", adminOnly, s.AdminGetUserReports)
	api.Get("/comments/by-user/:userId", adminOnly, s.AdminGetUserComments)
	api.Get("/activity-logs/by-user/:userId", adminOnly, s.AdminGetUserActivity)
	api.Get("/theories/by-user/:userId", adminOnly, s.AdminGetUserTheories)

	moderation := api.Group("/moderation", adminOnly)
	moderation.Get("/reports", s.AdminListReports)
	moderation.Delete("/reports/:id", s.AdminDismissReport)
	moderation.Get("/theories/:id/reports", s.AdminGetTheoryReports)
	moderation.Delete("/comments/:id", s.AdminDeleteComment)
	moderation.Get("/activity", s.AdminListActivity)

	// Auth routes
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/logout", s.Logout)

	admins := api.Group("/admins")
	admins.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)

	// Public browse routes
	theories := api.Group("/theories")
	theories.Get("/", s.GetTheories)
	theories.Get("/:id/comments", s.GetTheoryComments)
	theories.Get("/:id/likes", s.GetTheoryLikes)
	theories.Get("/:id/shares", s.GetTheoryShares)
	theories.Get("/:id", s.GetTheory)

	api.Get("/tags", s.GetTags)

	// Generation works without an account; the audit row just loses its
	// user reference.
	api.Post("/generate", middleware.RateLimit(
		s.redis, 20, time.Minute, "generate"), s.GenerateTheory)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protectedUsers := protected.Group("/users")
	protectedUsers.Get("/profile", s.GetProfile)
	protectedUsers.Put("/:id", s.UpdateUser)
	protectedUsers.Delete("/:id", s.DeleteUser)

	protectedTheories := protected.Group("/theories")
	protectedTheories.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_theory"), s.CreateTheory)
	protectedTheories.Put("/:id", s.UpdateTheory)
	protectedTheories.Delete("/:id", s.DeleteTheory)

	likes := protected.Group("/likes")
	likes.Get("/", s.GetMyLikes)
	likes.Get("/:theoryId", s.CheckLike)
	likes.Post("/", s.LikeTheory)
	likes.Delete("/:theoryId", s.UnlikeTheory)

	shares := protected.Group("/shares")
	shares.Get("/", s.GetMyShares)
	shares.Post("/", s.ShareTheory)
	shares.Delete("/:id", s.DeleteShare)

	reports := protected.Group("/reports")
	reports.Get("/", s.GetMyReports)
	reports.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_report"), s.CreateReport)

	comments := protected.Group("/comments")
	comments.Get("/", s.GetMyComments)
	comments.Post("/", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	protected.Get("/activity-logs", s.GetMyActivity)
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
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
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It accepts a bearer
// token or the session cookie set at login.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(sessionCookieName)
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := s.parseClaims(tokenString, audienceClient)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(err.Error()))
		}

		userID, err := subjectID(claims)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		if s.isRevoked(c, claims) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token has been revoked"))
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware for staff routes. Admin tokens carry a
// separate audience and a role claim; user tokens never pass.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(adminCookieName)
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Admin authorization required"))
		}

		claims, err := s.parseClaims(tokenString, audienceAdmin)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(err.Error()))
		}

		adminID, err := subjectID(claims)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid admin ID in token"))
		}

		if s.isRevoked(c, claims) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token has been revoked"))
		}

		// The account must still exist; a deleted admin's token is dead.
		admin, err := s.adminRepo.GetByID(c.Context(), adminID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Admin account not found"))
		}

		c.Locals("adminID", admin.ID)
		c.Locals("adminRole", admin.Role)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, admin.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

const (
	audienceClient = "tinfoil-client"
	audienceAdmin  = "tinfoil-admin"
	tokenIssuer    = "tinfoil-api"
)

// bearerToken extracts the token from the Authorization header, if present.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// parseClaims validates the token signature, issuer, and audience.
func (s *Server) parseClaims(tokenString, audience string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, fmt.Errorf("Invalid token issuer")
	}
	if aud, audOk := claims["aud"].(string); !audOk || aud != audience {
		return nil, fmt.Errorf("Invalid token audience")
	}
	return claims, nil
}

// subjectID parses the sub claim into an account ID.
func subjectID(claims jwt.MapClaims) (uint, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// isRevoked checks the JTI against the Redis blacklist. Without Redis the
// check is skipped; tokens then live until expiry.
func (s *Server) isRevoked(c *fiber.Ctx, claims jwt.MapClaims) bool {
	jti, exists := claims["jti"].(string)
	if !exists || jti == "" || s.redis == nil {
		return false
	}
	blacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
	return err == nil && blacklisted > 0
}

// optionalUserID attempts to extract userID from the request but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		tokenString = c.Cookies(sessionCookieName)
	}
	if tokenString == "" {
		return 0, false
	}

	claims, err := s.parseClaims(tokenString, audienceClient)
	if err != nil {
		return 0, false
	}
	userID, err := subjectID(claims)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Tinfoil API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
