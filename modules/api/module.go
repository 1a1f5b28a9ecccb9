package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/example/movie-catalog/domain/account"
	"github.com/example/movie-catalog/modules/auth"
	"github.com/example/movie-catalog/modules/movie"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const defaultPort = 3000

// APIModule is the HTTP API module.
type APIModule struct {
	app       *fiber.App
	port      int
	authPort  auth.AuthPort
	moviePort movie.MoviePort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on HTTP_PORT.
func NewModule() *APIModule {
	port := defaultPort
	if v := os.Getenv("HTTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			log.Printf("[api] Warning: invalid HTTP_PORT=%q, using %d", v, defaultPort)
		} else {
			port = p
		}
	}
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "movie"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	case "movie":
		m.moviePort = movie.NewMovieAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authPort == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.moviePort == nil {
		return fmt.Errorf("movie dependency not set")
	}

	m.app = newApp(NewHandlers(m.authPort, m.moviePort), m.authPort)

	addr := fmt.Sprintf(":%d", m.port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// newApp builds the fiber application with middleware and routes.
func newApp(handlers *Handlers, authPort auth.AuthPort) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	setupRoutes(app, handlers, authPort)
	return app
}

// setupRoutes configures all API routes.
func setupRoutes(app *fiber.App, handlers *Handlers, authPort auth.AuthPort) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)

	authenticated := RequireAuth(authPort)
	adminOnly := RequireAuth(authPort, account.RoleAdmin)

	v1.Get("/profile", authenticated, handlers.Profile)
	users := v1.Group("/users", adminOnly)
	users.Get("/", handlers.ListUsers)
	users.Get("/:id", handlers.GetUser)
	users.Put("/:id", handlers.UpdateUser)
	users.Delete("/:id", handlers.DeleteUser)

	movies := v1.Group("/movies")
	movies.Get("/", authenticated, handlers.ListMovies)
	movies.Post("/", authenticated, handlers.CreateMovie)
	movies.Get("/:id", authenticated, handlers.GetMovie)
	movies.Put("/:id", authenticated, handlers.UpdateMovie)
	movies.Delete("/:id", adminOnly, handlers.DeleteMovie)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("[api] Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
