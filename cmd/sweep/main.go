package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/repository"
)

// One-shot counterpart of the in-process sweeper, for cron jobs or
// manual runs against deployments where the API is not running.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := repository.NewBookingRepository(db)
	now := time.Now()
	swept, err := repo.CancelStalePending(context.Background(), now.Add(-cfg.PendingTTL), now)
	if err != nil {
		log.Fatalf("pending sweep failed: %v", err)
	}
	log.Printf("pending sweep completed: cancelled=%d ttl=%s", swept, cfg.PendingTTL)
}
