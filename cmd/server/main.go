// Package main implements the entry point for the Blob API server,
// which manages users' study topics and generates flashcards, quizzes,
// and mind maps from them using each user's configured AI provider.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/blobapp/blob-api/internal/config"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/platform/postgres"
)

// main is the entry point for the blob-api server.
// It initializes configuration, sets up logging, establishes the database
// connection, runs migrations, injects dependencies, and starts the HTTP
// server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the wired application and any initialization error.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger := logger.Setup(cfg.Server.LogLevel)

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.Info("Database migrations applied")

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	return app, nil
}
