package main

import (
	"fmt"
	"os"

	"ledgerbook/internal/config"
	"ledgerbook/internal/database"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/server"
)

// @title           Ledgerbook API
// @version         1.0
// @description     Ledgerbook tracks sales and purchase orders with trading parties, the material and financial transactions they produce, and each party's running balance.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Load configuration first so the logger honours ENV and LOG_LEVEL from .env
	cfg, err := config.Load()
	if err != nil {
		logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
		logger.Get().Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	router, err := server.NewRouter(cfg, db, server.NewServices(db))
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	log.Infow("Starting Ledgerbook server", "port", cfg.Port, "driver", cfg.DBDriver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
