package server

import (
	"log"

	"doc-manager-be/internal/bootstrap"
	"doc-manager-be/internal/config"
	"doc-manager-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Multipart parsing needs headroom above the document size cap.
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.App.MaxUploadBytes + 1024*1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

// The route paths match the contract the frontend was built against, so they
// mount at the root rather than under an /api prefix.
func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	root := app.Group("")

	c.DocumentController.RegisterRoutes(root)
	c.FolderController.RegisterRoutes(root)
	c.SessionController.RegisterRoutes(root)
	c.QuestionController.RegisterRoutes(root)
}
