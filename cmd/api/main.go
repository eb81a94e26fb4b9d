// Package main is the entry point for the book catalog API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nvasquez/libris/internal/config"
	"github.com/nvasquez/libris/internal/data"
	"github.com/nvasquez/libris/internal/database"
)

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config config.Config // Server configuration loaded from the environment
	logger *slog.Logger  // Structured logger that writes to stdout
	models data.Models   // Database model layer for all tables
}

// main is the application entry point.
// It loads the environment, opens the database, wires up dependencies, and
// starts the HTTP server. Failure to connect or migrate is fatal: the
// process never runs in a partially degraded mode.
func main() {
	// A .env file is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	settings, err := config.Load()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// Open the pool, verify connectivity, and apply the schema script.
	db, err := database.Open(settings.DB, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close() // Drain the pool cleanly when main() returns.

	if settings.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Bundle all shared dependencies into a single struct.
	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(db.DB),
	}

	// serve() blocks until shutdown; db.Close runs after requests drain.
	if err := appInstance.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
