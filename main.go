package main

import (
	"context"
	"log"

	api "mailtriage-backend/cmd/api"
	"mailtriage-backend/pkg/config"
	"mailtriage-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (runs auto-migration)
	db, err := database.NewPostgresConnection(cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize HTTP handler
	handler, err := api.NewHandler(context.Background(), db, cfg)
	if err != nil {
		log.Fatal("Failed to initialize handler:", err)
	}
	defer handler.Close()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
