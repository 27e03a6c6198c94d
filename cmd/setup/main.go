// Command setup creates the campaign database if needed and applies all migrations.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/KnightlyTreasures_Go/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	server := database.ServerFromEnv()
	name := os.Getenv("DB_NAME")

	created, err := server.CreateIfMissing(ctx, name)
	if err != nil {
		log.Fatal(err)
	}
	if created {
		log.Printf("Created database %s", name)
	} else {
		log.Printf("Database %s already exists", name)
	}

	version, err := server.MigrateDatabase(ctx, name)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Migrations applied (version %d)", version)
}
