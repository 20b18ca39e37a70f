package main // Entry point package for the CSV import worker

import (
	"log" // Logging library

	"github.com/joho/godotenv" // godotenv loads a local .env file in development

	"github.com/autoparts/catalog/internal/config"     // Internal config loader
	"github.com/autoparts/catalog/internal/database"   // MySQL connection pool
	"github.com/autoparts/catalog/internal/queue"      // Import consumer
	"github.com/autoparts/catalog/internal/repository" // Part repository
)

// The worker consumes parts.csv-import jobs and writes parts into the
// same database as the API. It runs as a separate process so a slow or
// broken import never blocks request handling.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	partRepo := repository.NewPartRepo(db)

	log.Printf("csv import worker starting (env=%s)", cfg.Env)
	// Blocks forever; reconnects to the broker with backoff on failure.
	if err := queue.StartImportConsumer(cfg.AMQPURL, partRepo); err != nil {
		log.Fatalf("consumer: %v", err)
	}
}
