package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/KnightlyTreasures_Go/internal/currency"
	"github.com/osse101/KnightlyTreasures_Go/internal/database"
	"github.com/osse101/KnightlyTreasures_Go/internal/database/postgres"
)

// debug dumps the shared shop tables for inspection
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, database.ToolPoolConfig(connString))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	store := postgres.NewStore(pool)
	defer store.Close()

	if version, err := database.MigrationVersion(ctx, pool); err == nil {
		fmt.Printf("Schema version: %d\n", version)
	}

	fmt.Println("\n--- Purchases ---")
	purchases, err := store.ListPurchases(ctx)
	if err != nil {
		log.Printf("Failed to list purchases: %v", err)
	}
	for _, p := range purchases {
		fmt.Printf("Item: %s, Buyer: %s, Week: %d, At: %s\n", p.ItemID, p.PurchasedBy, p.Week, p.PurchasedAt.Format(time.RFC3339))
	}

	fmt.Println("\n--- Reservations ---")
	reservations, err := store.ListReservations(ctx)
	if err != nil {
		log.Printf("Failed to list reservations: %v", err)
	}
	for _, r := range reservations {
		fmt.Printf("Item: %s, Holder: %s, Deposit: %s of %s, Since: %s\n", r.ItemID, r.ReservedBy,
			currency.FormatPrice(float64(r.DepositPaid)), currency.FormatPrice(float64(r.FullPrice)), r.ReservedAt.Format(time.RFC3339))
	}

	fmt.Println("\n--- Honor ---")
	honor, err := store.GetHonor(ctx)
	if err != nil {
		log.Printf("Failed to read honor: %v", err)
	}
	for clan, score := range honor {
		fmt.Printf("%s: %+d\n", clan, score)
	}

	fmt.Println("\n--- Characters ---")
	chars, err := store.ListCharacters(ctx)
	if err != nil {
		log.Printf("Failed to list characters: %v", err)
	}
	for _, c := range chars {
		fmt.Printf("%s (%s): %s %d, HP %d/%d, %d items\n", c.Name, c.ID, c.Class, c.Stats.Level, c.Stats.HPCurrent, c.Stats.HPMax, len(c.Backpack))
	}
}
