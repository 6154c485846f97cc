// seed is a one-shot tool that loads demo catalog items and users into the
// configured database. Run it after migrations against a fresh environment.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"retail-ledger/internal/core"
	"retail-ledger/internal/db"
	"retail-ledger/internal/store/postgres"
)

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required to seed")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	store := postgres.New(pool)

	log.Println("Seeding catalog items...")
	items := []core.AvailableItem{
		{SKU: "BEV-001", Name: "Espresso Beans 1kg", AvailableQuantity: 40, UnitPrice: decimal.NewFromFloat(18.50)},
		{SKU: "BEV-002", Name: "Green Tea 100ct", AvailableQuantity: 60, UnitPrice: decimal.NewFromFloat(9.75)},
		{SKU: "SNK-001", Name: "Almond Biscotti Box", AvailableQuantity: 25, UnitPrice: decimal.NewFromFloat(6.20)},
		{SKU: "SNK-002", Name: "Dark Chocolate Bar", AvailableQuantity: 120, UnitPrice: decimal.NewFromFloat(3.40)},
		{SKU: "HSE-001", Name: "Ceramic Mug", AvailableQuantity: 35, UnitPrice: decimal.NewFromFloat(12.00)},
		{SKU: "HSE-002", Name: "Stainless Tumbler", AvailableQuantity: 18, UnitPrice: decimal.NewFromFloat(21.90)},
	}
	for _, item := range items {
		if err := store.PutItem(ctx, item); err != nil {
			log.Fatalf("Failed to seed item %s: %v", item.SKU, err)
		}
	}

	log.Println("Seeding users...")
	users := core.NewUserService(store)
	accounts := []struct {
		email, fullName, designation, password string
	}{
		{"owner@example.com", "Priya Raman", "super", "superpass1"},
		{"manager@example.com", "Daniel Osei", "manager", "managerpass1"},
		{"staff@example.com", "Mina Park", "staff", "staffpass1"},
	}
	for _, a := range accounts {
		if _, err := users.Register(ctx, a.email, a.fullName, a.designation, a.password); err != nil {
			log.Fatalf("Failed to seed user %s: %v", a.email, err)
		}
	}

	log.Println("Seeding open obligations...")
	settlements := core.NewSettlementService(store)
	creditors := []struct {
		name   string
		amount string
	}{
		{"Wholesale Foods Ltd", "15000.00"},
		{"Bean Import Co", "4200.00"},
	}
	for _, c := range creditors {
		if _, err := settlements.OpenObligation(ctx, core.SideCreditor, c.name, decimal.RequireFromString(c.amount), ""); err != nil {
			log.Fatalf("Failed to seed obligation for %s: %v", c.name, err)
		}
	}

	log.Println("Seed data loaded successfully.")
}
