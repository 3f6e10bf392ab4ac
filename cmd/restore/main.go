package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"reflect"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voltbay.backend/internal/config"
	"voltbay.backend/internal/infrastructure/models"
)

var (
	godotenvLoad = godotenv.Load
	openDB       = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
)

// dump mirrors the layout written by the backup tool.
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
	in := flag.String("i", "voltbay-backup.json", "input file")
	flag.Parse()

	if err := godotenvLoad(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("❌ Failed to open %s: %v", *in, err)
	}
	defer f.Close()

	if err := loadBackup(db, f); err != nil {
		log.Fatalf("❌ Restore failed: %v", err)
	}
	log.Printf("✅ Restored from %s", *in)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Bid{},
		&models.Order{},
		&models.Payment{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.EnterpriseListing{},
		&models.QuoteRequest{},
		&models.QuoteResponse{},
	)
}

// loadBackup inserts parents before children so foreign keys resolve.
func loadBackup(db *gorm.DB, r io.Reader) error {
	var d dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return err
	}

	for _, rows := range []interface{}{
		&d.Users, &d.Categories, &d.Products, &d.Bids,
		&d.Orders, &d.Payments, &d.Wallets, &d.WalletTransactions,
		&d.EnterpriseListings, &d.QuoteRequests, &d.QuoteResponses,
	} {
		if err := insertAll(db, rows); err != nil {
			return err
		}
	}
	return nil
}

func insertAll(db *gorm.DB, rows interface{}) error {
	// gorm rejects creates on empty slices.
	if reflect.ValueOf(rows).Elem().Len() == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500).Error
}
