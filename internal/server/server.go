// Package server contains the HTTP handlers and routing for the posts API.
package server

import (
	"context"
	"time"

	"postboard/internal/config"
	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/service"
	"postboard/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const apiVersion = "1.0.0"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	posts          store.PostStore
	publisher      notifications.Publisher
	promMiddleware *fiberprometheus.FiberPrometheus
	postService    *service.PostService
}

// NewServerWithDeps creates a Server using already-initialized backends.
func NewServerWithDeps(
	cfg *config.Config,
	posts store.PostStore,
	profiles store.ProfileStore,
	publisher notifications.Publisher,
) *Server {
	if publisher == nil {
		publisher = notifications.Noop{}
	}
	middleware.InitMiddleware(cfg)

	return &Server{
		config:         cfg,
		posts:          posts,
		publisher:      publisher,
		promMiddleware: middleware.InitMetrics("postboard-api"),
		postService:    service.NewPostService(posts, profiles),
	}
}

// NewApp builds the Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Postboard API",
		BodyLimit: 1 * 1024 * 1024,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing runs first so ContextMiddleware can copy the trace ID.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)

	posts.Post("/", middleware.AuthRequired, s.CreatePost)
	// Specific prefixes before the generic /:id delete.
	posts.Post("/like/:id", middleware.AuthRequired, s.LikePost)
	posts.Post("/unlike/:id", middleware.AuthRequired, s.UnlikePost)
	posts.Post("/comment/:id", middleware.AuthRequired, s.CreateComment)
	posts.Delete("/comment/:id/:com_id", middleware.AuthRequired, s.DeleteComment)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)
}

// HealthCheck reports the API banner together with readiness.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the post store.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if err := s.posts.Ping(ctx); err != nil {
		storeStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Postboard",
		"version": apiVersion,
		"status":  overall,
		"checks": fiber.Map{
			"store":  storeStatus,
			"events": s.config.EventsDriver,
		},
		"time": time.Now(),
	})
}
