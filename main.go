package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/movie-catalog/modules/api"
	"github.com/example/movie-catalog/modules/auth"
	"github.com/example/movie-catalog/modules/movie"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Movie Catalog ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then the HTTP layer that depends on them.
	app.Register(auth.NewModule())
	app.Register(movie.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public:")
	log.Println("  POST   /api/v1/auth/register  - Register a new user")
	log.Println("  POST   /api/v1/auth/login     - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh   - Exchange a refresh token")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("  Authenticated (Bearer token):")
	log.Println("  GET    /api/v1/profile        - Current user profile")
	log.Println("  GET    /api/v1/movies         - List movies")
	log.Println("  GET    /api/v1/movies/:id     - Get a movie")
	log.Println("  POST   /api/v1/movies         - Add a movie")
	log.Println("  PUT    /api/v1/movies/:id     - Update a movie")
	log.Println("")
	log.Println("  Admin only:")
	log.Println("  GET    /api/v1/users          - List accounts")
	log.Println("  DELETE /api/v1/movies/:id     - Delete a movie")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
