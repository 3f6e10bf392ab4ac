package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"voltbay.backend/internal/config"
	"voltbay.backend/internal/infrastructure/models"
)

var (
	godotenvLoad = godotenv.Load
	openDB       = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
)

// dump is the on-disk backup layout, one slice per table.
type dump struct {
	Users              []models.User              `json:"users"`
	Categories         []models.Category          `json:"categories"`
	Products           []models.Product           `json:"products"`
	Bids               []models.Bid               `json:"bids"`
	Orders             []models.Order             `json:"orders"`
	Payments           []models.Payment           `json:"payments"`
	Wallets            []models.Wallet            `json:"wallets"`
	WalletTransactions []models.WalletTransaction `json:"walletTransactions"`
	EnterpriseListings []models.EnterpriseListing `json:"enterpriseListings"`
	QuoteRequests      []models.QuoteRequest      `json:"quoteRequests"`
	QuoteResponses     []models.QuoteResponse     `json:"quoteResponses"`
}

func main() {
	out := flag.String("o", "voltbay-backup.json", "output file")
	flag.Parse()

	if err := godotenvLoad(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("❌ Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	if err := writeBackup(db, f); err != nil {
		log.Fatalf("❌ Backup failed: %v", err)
	}
	log.Printf("✅ Backup written to %s", *out)
}

func writeBackup(db *gorm.DB, w io.Writer) error {
	var d dump
	// Unscoped keeps soft-deleted rows in the backup.
	for _, dest := range []interface{}{
		&d.Users, &d.Categories, &d.Products, &d.Bids,
		&d.Orders, &d.Payments, &d.Wallets, &d.WalletTransactions,
		&d.EnterpriseListings, &d.QuoteRequests, &d.QuoteResponses,
	} {
		if err := db.Unscoped().Find(dest).Error; err != nil {
			return err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&d)
}
