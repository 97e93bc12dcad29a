package main

import (
	"context"
	"log"

	"github.com/conectidade/api/config"
	_ "github.com/conectidade/api/docs"
	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/routes"
)

// @title Conectidade API
// @version 1.0
// @description REST backend for Conectidade, connecting people who teach skills with people who want to learn them.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var st store.Storage
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := config.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := store.AutoMigrate(db); err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
		st = store.NewGormStore(db)
	default:
		st = store.NewMemoryStore()
	}

	if err := store.Seed(context.Background(), st); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	r := routes.SetupRoutes(st, cfg)

	log.Printf("Starting server on port %s in %s mode (storage: %s)", cfg.App.Port, cfg.App.Env, cfg.Storage.Driver)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
