// Command reset drops and recreates the campaign database, then reapplies
// migrations. Every purchase, reservation and character edit is lost.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/KnightlyTreasures_Go/internal/database"
)

func main() {
	confirm := flag.Bool("yes", false, "confirm that all campaign data should be deleted")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	name := os.Getenv("DB_NAME")
	if !*confirm {
		log.Fatalf("Refusing to reset %s without -yes", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	server := database.ServerFromEnv()
	if err := server.Recreate(ctx, name); err != nil {
		log.Fatal(err)
	}

	version, err := server.MigrateDatabase(ctx, name)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Database %s reset (migration version %d)", name, version)
}
