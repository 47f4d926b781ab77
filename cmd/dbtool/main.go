package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"container-tracking-service/internal/auth"
	"container-tracking-service/internal/config"
	"container-tracking-service/internal/platform/db"
	"container-tracking-service/internal/repository"
)

// dbtool stands up the schema and demo accounts on an empty local
// Postgres. Never point it at the production database: the Django side
// owns that schema.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := repository.InitSchema(ctx, database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if username := os.Getenv("SEED_CUSTOMER_USERNAME"); username != "" {
		hash, err := auth.HashPassword(envOr("SEED_CUSTOMER_PASSWORD", "changeme"))
		if err != nil {
			log.Fatal(err)
		}
		zemName := envOr("SEED_CUSTOMER_ZEM_NAME", username)
		if err := repository.SeedCustomer(ctx, database, zemName, username, hash); err != nil {
			log.Fatal(err)
		}
		log.Printf("Seeded customer account %q (zem_name %q)", username, zemName)
	}

	if username := os.Getenv("SEED_STAFF_USERNAME"); username != "" {
		hash, err := auth.HashPassword(envOr("SEED_STAFF_PASSWORD", "changeme"))
		if err != nil {
			log.Fatal(err)
		}
		if err := repository.SeedStaff(ctx, database, username, hash, "", ""); err != nil {
			log.Fatal(err)
		}
		log.Printf("Seeded staff account %q", username)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
