// Package main implements the entry point for the ledger API server,
// which tracks accounts, transactions, budgets, and statement
// reconciliations for a personal finance application.
package main

import (
	"fmt"
	"log"

	"github.com/hearthapp/ledger-api/internal/config"
	"github.com/hearthapp/ledger-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, runs migrations when enabled, and wires the service graph.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"auto_migrate", cfg.Database.AutoMigrate)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, appLogger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return newApplication(cfg, db, appLogger), nil
}
